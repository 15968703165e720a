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

	"android/emudevice/android"
)

const sourcePropertiesName = "source.properties"

// LauncherBundle is the unified launcher executable together with its
// transitive run-files.
type LauncherBundle struct {
	Executable android.Artifact
	RunFiles   android.Artifacts
}

// ToolDeps is the fixed set of host tool artifacts the device rule depends
// on.  It is supplied by the surrounding framework, not by user
// attributes; DefaultProperties is the only optional entry and may be nil.
type ToolDeps struct {
	Adb             android.Artifact
	AdbStatic       android.Artifact
	EmulatorArm     android.Artifact
	EmulatorX86     android.Artifact
	EmulatorX86Bios android.Artifacts
	XvfbSupport     android.Artifacts
	Mksdcard        android.Artifact
	EmptySnapshotFs android.Artifact
	UnifiedLauncher LauncherBundle

	// AndroidRuntestDeps must contain exactly one source artifact, the
	// runtest script itself.  TestingShbaseDeps must contain exactly one
	// artifact named googletest.sh.
	AndroidRuntestDeps android.Artifacts
	TestingShbaseDeps  android.Artifacts

	SdkPath           android.Artifact
	DefaultProperties android.Artifact
	PlatformApks      android.Artifacts
}

// Filegroup is a resolved group of files, labeled for error messages.
type Filegroup struct {
	Label string
	Files android.Artifacts
}

// commonDeps is the result of dependency collection: the distinguished
// artifacts picked out of their bundles and the canonical dependency list
// shared by the runfiles collector and the boot action.
type commonDeps struct {
	sourceProperties android.Artifact
	systemImages     android.Artifacts
	androidRuntest   android.Artifact
	testingShbase    android.Artifact

	// all is the canonically ordered union of every tool and image
	// artifact.  The order is only significant for display and for stable
	// action fingerprints, and must not change between builds.
	all android.Artifacts
}

// collectDeps partitions the system image filegroup around its
// source.properties descriptor and resolves the exactly-one selections
// inside the tool bundles.  Every check runs even if an earlier one
// failed, and all failures are returned together.
func collectDeps(systemImage Filegroup, tools ToolDeps) (*commonDeps, []error) {
	var errs []error

	var sourceProperties android.Artifact
	var systemImages android.Artifacts
	numProperties := 0
	for _, f := range systemImage.Files {
		if f.Base() == sourcePropertiesName {
			sourceProperties = f
			numProperties++
		} else {
			systemImages = append(systemImages, f)
		}
	}
	if numProperties == 0 {
		errs = append(errs, fmt.Errorf(
			"no %s files exist in this filegroup (%s)", sourcePropertiesName, systemImage.Label))
	}
	if numProperties > 1 {
		errs = append(errs, fmt.Errorf(
			"multiple %s files exist in this filegroup (%s)", sourcePropertiesName, systemImage.Label))
	}

	// These selections are a contract with the fixed tool dependencies,
	// not with user input.  Zero or multiple matches means the tool rule
	// broke its contract.
	androidRuntest, err := findOnlyMatch(tools.AndroidRuntestDeps, "source file in android_runtest deps",
		func(a android.Artifact) bool { return a.IsSource() })
	if err != nil {
		errs = append(errs, err)
	}
	testingShbase, err := findOnlyMatch(tools.TestingShbaseDeps, "googletest.sh in testing_shbase deps",
		func(a android.Artifact) bool { return a.Base() == "googletest.sh" })
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	var all android.Artifacts
	all = append(all, tools.Adb)
	all = append(all, sourceProperties)
	all = append(all, systemImages...)
	all = append(all, tools.EmulatorArm)
	all = append(all, tools.EmulatorX86)
	all = append(all, tools.AdbStatic)
	all = append(all, tools.EmulatorX86Bios...)
	all = append(all, tools.XvfbSupport...)
	all = append(all, tools.Mksdcard)
	all = append(all, tools.EmptySnapshotFs)
	all = append(all, tools.UnifiedLauncher.RunFiles...)
	all = append(all, tools.AndroidRuntestDeps...)
	all = append(all, tools.TestingShbaseDeps...)
	all = append(all, tools.PlatformApks...)

	return &commonDeps{
		sourceProperties: sourceProperties,
		systemImages:     systemImages,
		androidRuntest:   androidRuntest,
		testingShbase:    testingShbase,
		all:              android.FirstUniqueArtifacts(all),
	}, nil
}

// findOnlyMatch returns the single artifact in list matched by pred.  Zero
// or multiple matches is an error naming what was searched for.
func findOnlyMatch(list android.Artifacts, what string, pred func(android.Artifact) bool) (android.Artifact, error) {
	var found android.Artifact
	count := 0
	for _, a := range list {
		if pred(a) {
			found = a
			count++
		}
	}
	switch count {
	case 1:
		return found, nil
	case 0:
		return nil, fmt.Errorf("expected exactly one %s, found none", what)
	default:
		return nil, fmt.Errorf("expected exactly one %s, found %d", what, count)
	}
}
