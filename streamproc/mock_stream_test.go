/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package streamproc

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/meterlink/mcore/stream"
)

// MockStream is a hand-maintained gomock mock of stream.Stream, kept
// in the package rather than generated, so Buffered's paging algorithm
// can be driven against a fully controllable inner stream without
// touching disk.
type MockStream struct {
	ctrl     *gomock.Controller
	recorder *MockStreamMockRecorder
}

type MockStreamMockRecorder struct {
	mock *MockStream
}

func NewMockStream(ctrl *gomock.Controller) *MockStream {
	m := &MockStream{ctrl: ctrl}
	m.recorder = &MockStreamMockRecorder{m}
	return m
}

func (m *MockStream) EXPECT() *MockStreamMockRecorder { return m.recorder }

func (m *MockStream) Open(name string, flags stream.Flags, sharing stream.Sharing) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Open", name, flags, sharing)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) Open(name, flags, sharing interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Open", reflect.TypeOf((*MockStream)(nil).Open), name, flags, sharing)
}

func (m *MockStream) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockStream)(nil).Close))
}

func (m *MockStream) IsOpen() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsOpen")
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockStreamMockRecorder) IsOpen() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsOpen", reflect.TypeOf((*MockStream)(nil).IsOpen))
}

func (m *MockStream) ReadAvailable(dst []byte) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReadAvailable", dst)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockStreamMockRecorder) ReadAvailable(dst interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReadAvailable", reflect.TypeOf((*MockStream)(nil).ReadAvailable), dst)
}

func (m *MockStream) Write(src []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Write", src)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) Write(src interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Write", reflect.TypeOf((*MockStream)(nil).Write), src)
}

func (m *MockStream) Position() (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Position")
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockStreamMockRecorder) Position() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Position", reflect.TypeOf((*MockStream)(nil).Position))
}

func (m *MockStream) SetPosition(pos int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetPosition", pos)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) SetPosition(pos interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPosition", reflect.TypeOf((*MockStream)(nil).SetPosition), pos)
}

func (m *MockStream) Size() (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Size")
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockStreamMockRecorder) Size() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Size", reflect.TypeOf((*MockStream)(nil).Size))
}

func (m *MockStream) SetSize(size int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetSize", size)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) SetSize(size interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetSize", reflect.TypeOf((*MockStream)(nil).SetSize), size)
}

func (m *MockStream) Flush(soft bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Flush", soft)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) Flush(soft interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockStream)(nil).Flush), soft)
}

func (m *MockStream) SetKey(key []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetKey", key)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockStreamMockRecorder) SetKey(key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetKey", reflect.TypeOf((*MockStream)(nil).SetKey), key)
}

var _ stream.Stream = (*MockStream)(nil)
