// Copyright 2024 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package device

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateBounds(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*DeviceAttributes)
		errors []AttributeError
	}{
		{
			name:   "valid",
			mutate: func(a *DeviceAttributes) {},
		},
		{
			name:   "ram below minimum",
			mutate: func(a *DeviceAttributes) { a.RAM = 63 },
			errors: []AttributeError{{"ram", "ram must be at least: 64"}},
		},
		{
			name:   "ram at minimum",
			mutate: func(a *DeviceAttributes) { a.RAM = 64 },
		},
		{
			name:   "ram at maximum",
			mutate: func(a *DeviceAttributes) { a.RAM = 4096 },
		},
		{
			name:   "ram above maximum",
			mutate: func(a *DeviceAttributes) { a.RAM = 4097 },
			errors: []AttributeError{{"ram", "ram cannot be greater than: 4096"}},
		},
		{
			name:   "density below minimum",
			mutate: func(a *DeviceAttributes) { a.ScreenDensity = 29 },
			errors: []AttributeError{{"screen_density", "density must be at least: 30"}},
		},
		{
			name:   "density at minimum",
			mutate: func(a *DeviceAttributes) { a.ScreenDensity = 30 },
		},
		{
			name:   "horizontal below minimum",
			mutate: func(a *DeviceAttributes) { a.HorizontalResolution = 239 },
			errors: []AttributeError{{"horizontal_resolution", "horizontal must be at least: 240"}},
		},
		{
			name:   "vertical below minimum",
			mutate: func(a *DeviceAttributes) { a.VerticalResolution = 100 },
			errors: []AttributeError{{"vertical_resolution", "vertical must be at least: 240"}},
		},
		{
			name:   "cache below minimum",
			mutate: func(a *DeviceAttributes) { a.Cache = 15 },
			errors: []AttributeError{{"cache", "cache must be at least: 16"}},
		},
		{
			name:   "vm heap below minimum",
			mutate: func(a *DeviceAttributes) { a.VMHeap = 15 },
			errors: []AttributeError{{"vm_heap", "vm heap must be at least: 16"}},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			attrs := validAttrs()
			test.mutate(&attrs)
			got := attrs.Validate()
			if diff := cmp.Diff(test.errors, got); diff != "" {
				t.Errorf("unexpected errors (-want +got):\n%s", diff)
			}
		})
	}
}

// All checks run even when several attributes are bad at once.
func TestValidateNotFailFast(t *testing.T) {
	got := DeviceAttributes{}.Validate()
	wantAttributes := []string{
		"horizontal_resolution",
		"vertical_resolution",
		"ram",
		"screen_density",
		"cache",
		"vm_heap",
	}
	var gotAttributes []string
	for _, err := range got {
		gotAttributes = append(gotAttributes, err.Attribute)
	}
	if diff := cmp.Diff(wantAttributes, gotAttributes); diff != "" {
		t.Errorf("unexpected attributes in error (-want +got):\n%s", diff)
	}
}

func TestAttributeErrorMessage(t *testing.T) {
	err := AttributeError{Attribute: "ram", Message: "ram must be at least: 64"}
	if g, w := err.Error(), "attribute ram: ram must be at least: 64"; g != w {
		t.Errorf("expected %q, got %q", w, g)
	}
}

func TestScreenSize(t *testing.T) {
	if g, w := validAttrs().screenSize(), "1080x1920"; g != w {
		t.Errorf("expected %q, got %q", w, g)
	}
}
