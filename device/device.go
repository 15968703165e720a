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

// Package device lowers a declarative android_device definition into a
// launcher stub script and a boot action for an external executor.
package device

import (
	"path/filepath"

	"android/emudevice/android"
)

// DeviceBrokerType identifies how tests talk to devices built by this
// rule.
const DeviceBrokerType = "WRAPPED_EMULATOR"

// Implicit output names, relative to the target's output directory.
const (
	metadataOutputName = "emulator-meta-data.pb"
	imagesOutputName   = "userdata_images.dat"
)

// Target is the fully assembled device target: the expanded stub script,
// the boot action, and the dependency lists the packaging collaborator
// consumes.  A Target is immutable once assembled and is never shared
// between two device definitions.
type Target struct {
	Name       string
	Attributes DeviceAttributes

	StubScript StubScript
	BootAction SpawnSpec

	// CommonDeps is the canonically ordered tool and image dependency
	// list, consumed by the runfiles collector.
	CommonDeps android.Artifacts

	// FilesToBuild enumerates the target's own outputs: the executable
	// stub, the emulator metadata, and the userdata images.
	FilesToBuild android.Artifacts

	BrokerType string
}

// AssembleTarget validates the device attributes, collects dependencies,
// and constructs the stub script and boot action.  On any configuration
// error the whole list of errors is returned and no partial target is
// produced.
func AssembleTarget(cfg android.Config, name string, attrs DeviceAttributes,
	systemImage Filegroup, tools ToolDeps, constraints map[string]string) (*Target, []error) {

	executable := cfg.OutputArtifact(name)
	metadata := cfg.OutputArtifact(filepath.Join(name+"_images", metadataOutputName))
	images := cfg.OutputArtifact(filepath.Join(name+"_images", imagesOutputName))

	var errs []error
	for _, err := range attrs.Validate() {
		errs = append(errs, err)
	}

	deps, depErrs := collectDeps(systemImage, tools)
	errs = append(errs, depErrs...)
	if len(errs) > 0 {
		return nil, errs
	}

	stub, err := expandStubScript(cfg, deps, tools, metadata, images, executable)
	if err != nil {
		return nil, []error{err}
	}

	boot := buildBootAction(attrs, deps, tools, constraints, metadata, images)

	return &Target{
		Name:         name,
		Attributes:   attrs,
		StubScript:   stub,
		BootAction:   boot,
		CommonDeps:   deps.all,
		FilesToBuild: android.Artifacts{executable, metadata, images},
		BrokerType:   DeviceBrokerType,
	}, nil
}
