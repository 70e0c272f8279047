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

package ini

import (
	"bytes"

	goini "github.com/go-ini/ini"

	"github.com/meterlink/mcore/dict"
	"github.com/meterlink/mcore/stream"
	"github.com/meterlink/mcore/variant"
)

// Writer sequentially emits INI-formatted entries to a stream,
// inserting a blank line before every section key after the first and
// tracking the logical line count the same way Reader does.
type Writer struct {
	s           stream.Stream
	wroteFirst  bool
	line        int
}

// NewWriter wraps s as an INI writer.
func NewWriter(s stream.Stream) *Writer {
	return &Writer{s: s}
}

// WriteKey emits a "[key]" section line, preceded by a blank line if
// this is not the first line written.
func (w *Writer) WriteKey(key string) error {
	if w.wroteFirst {
		if err := stream.WriteLine(w.s, ""); err != nil {
			return err
		}
		w.line++
	}
	w.wroteFirst = true
	w.line++
	return stream.WriteLine(w.s, "["+key+"]")
}

// WriteNameValue emits a "name=literal" line using dict.LiteralOf's
// constant rendering rules for the literal.
func (w *Writer) WriteNameValue(name string, val variant.Variant) error {
	w.wroteFirst = true
	w.line++
	lit, err := dict.LiteralOf(val)
	if err != nil {
		return err
	}
	return stream.WriteLine(w.s, name+"="+lit)
}

// ExportCompat re-renders entries (as produced by repeatedly calling
// Reader.Next) through github.com/go-ini/ini, for callers that want a
// conventional *ini.File instead of mcore's own sequential form.
func ExportCompat(entries []Entry) (*goini.File, error) {
	f := goini.Empty()
	section, err := f.NewSection(goini.DefaultSection)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		switch e.Kind {
		case Key:
			section, err = f.NewSection(e.Key)
			if err != nil {
				return nil, err
			}
		case NameValue:
			s, err := e.Value.AsString()
			if err != nil {
				return nil, err
			}
			section.NewKey(e.Name, s)
		}
	}
	return f, nil
}

// ExportDictionary flattens a dict.Dictionary's entries into the
// default section of a *go-ini/ini File, the way a deployment would
// hand mcore's own Dictionary off to conventional go-ini tooling,
// grounded on calnex/api/ini.go's ToBuffer helper.
func ExportDictionary(d *dict.Dictionary) (*goini.File, error) {
	f := goini.Empty()
	section, err := f.NewSection(goini.DefaultSection)
	if err != nil {
		return nil, err
	}
	for _, key := range d.AllKeys() {
		name, err := key.AsString()
		if err != nil {
			return nil, err
		}
		val, err := d.Item(key)
		if err != nil {
			return nil, err
		}
		s, err := val.AsString()
		if err != nil {
			return nil, err
		}
		section.NewKey(name, s)
	}
	return f, nil
}

// ExportBuffer renders f into a buffer the way calnex's api.ToBuffer
// does, disabling go-ini's pretty alignment so output matches mcore's
// own compact writer format.
func ExportBuffer(f *goini.File) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	goini.PrettyFormat = false
	goini.PrettySection = false
	_, err := f.WriteTo(buf)
	return buf, err
}
