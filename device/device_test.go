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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"android/emudevice/android"
)

var testConfig = android.Config{WorkspaceName: "main", OutDir: "out"}

func testToolDeps() ToolDeps {
	launcher := testConfig.SourceArtifact("tools/emulator/unified_launcher")
	return ToolDeps{
		Adb:         testConfig.SourceArtifact("tools/adb"),
		AdbStatic:   testConfig.SourceArtifact("tools/adb.static"),
		EmulatorArm: testConfig.SourceArtifact("tools/emulator-arm"),
		EmulatorX86: testConfig.SourceArtifact("tools/emulator-x86"),
		EmulatorX86Bios: android.Artifacts{
			testConfig.SourceArtifact("tools/bios/bios.bin"),
			testConfig.SourceArtifact("tools/bios/vgabios.bin"),
		},
		XvfbSupport: android.Artifacts{
			testConfig.SourceArtifact("tools/xvfb/Xvfb"),
		},
		Mksdcard:        testConfig.SourceArtifact("tools/mksdcard"),
		EmptySnapshotFs: testConfig.SourceArtifact("tools/snapshots.img"),
		UnifiedLauncher: LauncherBundle{
			Executable: launcher,
			RunFiles: android.Artifacts{
				launcher,
				testConfig.SourceArtifact("tools/emulator/launcher_lib.sh"),
			},
		},
		AndroidRuntestDeps: android.Artifacts{
			testConfig.SourceArtifact("tools/android_runtest.sh"),
			testConfig.OutputArtifact("tools/runtest_deps.jar"),
		},
		TestingShbaseDeps: android.Artifacts{
			testConfig.SourceArtifact("tools/shbase/googletest.sh"),
			testConfig.SourceArtifact("tools/shbase/shflags"),
		},
		SdkPath: testConfig.SourceArtifact("sdk"),
	}
}

func testSystemImage() Filegroup {
	return Filegroup{
		Label: "arm_images",
		Files: android.Artifacts{
			testConfig.SourceArtifact("images/arm/source.properties"),
			testConfig.SourceArtifact("images/arm/system.img"),
			testConfig.SourceArtifact("images/arm/userdata.img"),
		},
	}
}

func validAttrs() DeviceAttributes {
	return DeviceAttributes{
		HorizontalResolution: 1080,
		VerticalResolution:   1920,
		RAM:                  2048,
		Cache:                32,
		VMHeap:               256,
		ScreenDensity:        240,
	}
}

func TestAssembleTarget(t *testing.T) {
	target, errs := AssembleTarget(testConfig, "test_device", validAttrs(),
		testSystemImage(), testToolDeps(), map[string]string{"requires-kvm": "1"})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if target.BrokerType != "WRAPPED_EMULATOR" {
		t.Errorf("broker type: expected WRAPPED_EMULATOR, got %q", target.BrokerType)
	}

	wantFiles := []string{
		"out/test_device",
		"out/test_device_images/emulator-meta-data.pb",
		"out/test_device_images/userdata_images.dat",
	}
	if diff := cmp.Diff(wantFiles, target.FilesToBuild.ExecPaths()); diff != "" {
		t.Errorf("unexpected files to build (-want +got):\n%s", diff)
	}

	args := strings.Join(target.BootAction.Args, " ")
	for _, want := range []string{
		"--density=240 --memory=2048 --cache=32 --vm_size=256",
		"--skin=1080x1920",
		"--system_images=images/arm/system.img images/arm/userdata.img",
		"--platform_apks=",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("boot args %q missing %q", args, want)
		}
	}
	if strings.Contains(args, "--default_properties_file=") {
		t.Errorf("boot args %q unexpectedly mention default properties", args)
	}
	if len(target.BootAction.Outputs) != 2 {
		t.Errorf("expected exactly 2 boot outputs, got %d", len(target.BootAction.Outputs))
	}

	if g, w := target.BootAction.Constraints["requires-kvm"], "1"; g != w {
		t.Errorf("constraints not passed through: expected %q, got %q", w, g)
	}
}

func TestAssembleTargetDeterministic(t *testing.T) {
	first, errs := AssembleTarget(testConfig, "test_device", validAttrs(),
		testSystemImage(), testToolDeps(), nil)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	second, errs := AssembleTarget(testConfig, "test_device", validAttrs(),
		testSystemImage(), testToolDeps(), nil)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if first.StubScript.Content != second.StubScript.Content {
		t.Error("stub script is not deterministic")
	}
	if diff := cmp.Diff(first.BootAction.Args, second.BootAction.Args); diff != "" {
		t.Errorf("boot args are not deterministic (-first +second):\n%s", diff)
	}

	firstDesc, err := first.BootAction.MarshalDescriptor()
	if err != nil {
		t.Fatalf("unexpected error %s", err.Error())
	}
	secondDesc, err := second.BootAction.MarshalDescriptor()
	if err != nil {
		t.Fatalf("unexpected error %s", err.Error())
	}
	if string(firstDesc) != string(secondDesc) {
		t.Error("boot descriptor is not deterministic")
	}
}

func TestAssembleTargetSurfacesAllErrors(t *testing.T) {
	attrs := validAttrs()
	attrs.RAM = 63

	noProperties := Filegroup{
		Label: "broken_images",
		Files: android.Artifacts{
			testConfig.SourceArtifact("images/arm/system.img"),
		},
	}

	target, errs := AssembleTarget(testConfig, "test_device", attrs,
		noProperties, testToolDeps(), nil)
	if target != nil {
		t.Fatal("expected no target on configuration errors")
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}

	joined := errs[0].Error() + "; " + errs[1].Error()
	for _, want := range []string{"ram must be at least: 64", "no source.properties"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors %q missing %q", joined, want)
		}
	}
}
