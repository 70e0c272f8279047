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

// Package mversion tracks mcore's own release version and compares it
// against a caller-supplied minimum the way a deployed meter adapter
// would gate a protocol feature on MeteringSDKVersion.h in the
// original library.
package mversion

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// Current is mcore's own release version.
const Current = "0.1.0"

// Parsed returns Current as a *version.Version.
func Parsed() (*version.Version, error) {
	return version.NewVersion(Current)
}

// AtLeast reports whether mcore's current version is greater than or
// equal to minimum (e.g. "0.1.0", "1.2.3-rc1").
func AtLeast(minimum string) (bool, error) {
	cur, err := Parsed()
	if err != nil {
		return false, fmt.Errorf("mversion: parse current version: %w", err)
	}
	want, err := version.NewVersion(minimum)
	if err != nil {
		return false, fmt.Errorf("mversion: parse minimum %q: %w", minimum, err)
	}
	return cur.GreaterThanOrEqual(want), nil
}
