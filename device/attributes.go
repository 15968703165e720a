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
	"fmt"
	"strconv"
)

// Min resolution
const (
	minHorizontal = 240
	minVertical   = 240
)

const (
	minRAM    = 64
	maxRAM    = 4096
	minVMHeap = 16
	minCache  = 16
)

// http://en.wikipedia.org/wiki/List_of_displays_by_pixel_density
// this is a much lower pixels-per-inch than even some of the oldest phones.
const minLCDDensity = 30

// DeviceAttributes holds the numeric parameters of an emulated device.
// All fields are set once at construction and never mutated.
type DeviceAttributes struct {
	HorizontalResolution int
	VerticalResolution   int
	RAM                  int
	Cache                int
	VMHeap               int
	ScreenDensity        int
}

// An AttributeError describes one attribute value that is outside its
// allowed bounds.
type AttributeError struct {
	Attribute string
	Message   string
}

func (e AttributeError) Error() string {
	return fmt.Sprintf("attribute %s: %s", e.Attribute, e.Message)
}

// Validate checks every attribute against its bounds and returns one error
// per violated bound.  All checks run regardless of earlier failures so
// the user sees every problem at once.
func (a DeviceAttributes) Validate() []AttributeError {
	var errs []AttributeError
	attributeError := func(attribute, message string, value int) {
		errs = append(errs, AttributeError{
			Attribute: attribute,
			Message:   fmt.Sprintf("%s %d", message, value),
		})
	}

	if a.HorizontalResolution < minHorizontal {
		attributeError("horizontal_resolution", "horizontal must be at least:", minHorizontal)
	}
	if a.VerticalResolution < minVertical {
		attributeError("vertical_resolution", "vertical must be at least:", minVertical)
	}
	if a.RAM < minRAM {
		attributeError("ram", "ram must be at least:", minRAM)
	}
	if a.RAM > maxRAM {
		attributeError("ram", "ram cannot be greater than:", maxRAM)
	}
	if a.ScreenDensity < minLCDDensity {
		attributeError("screen_density", "density must be at least:", minLCDDensity)
	}
	if a.Cache < minCache {
		attributeError("cache", "cache must be at least:", minCache)
	}
	if a.VMHeap < minVMHeap {
		attributeError("vm_heap", "vm heap must be at least:", minVMHeap)
	}
	return errs
}

// screenSize renders the skin dimensions as "<horizontal>x<vertical>".
func (a DeviceAttributes) screenSize() string {
	return strconv.Itoa(a.HorizontalResolution) + "x" + strconv.Itoa(a.VerticalResolution)
}
