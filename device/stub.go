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
	_ "embed"
	"fmt"

	"android/emudevice/android"
)

//go:embed stub_template.txt
var stubTemplate string

// StubScript is the expanded launcher script and the output artifact it
// is written to.
type StubScript struct {
	Output  android.Artifact
	Content string
}

// expandStubScript substitutes the device's resolved artifacts into the
// launcher template.  The stub runs out of a packaged runfiles tree, so
// every path is a runfiles path.  A placeholder mismatch between the
// template and the bindings is a programming error, not user error.
func expandStubScript(cfg android.Config, deps *commonDeps, tools ToolDeps,
	metadata, images, executable android.Artifact) (StubScript, error) {

	values := map[string]string{
		"workspace":              cfg.WorkspaceName,
		"unified_launcher":       tools.UnifiedLauncher.Executable.RunfilesPath(),
		"adb":                    tools.Adb.RunfilesPath(),
		"adb_static":             tools.AdbStatic.RunfilesPath(),
		"emulator_x86":           tools.EmulatorX86.RunfilesPath(),
		"emulator_arm":           tools.EmulatorArm.RunfilesPath(),
		"mksdcard":               tools.Mksdcard.RunfilesPath(),
		"empty_snapshot_fs":      tools.EmptySnapshotFs.RunfilesPath(),
		"system_images":          android.JoinRunfilesPaths(" ", deps.systemImages),
		"bios_files":             android.JoinRunfilesPaths(" ", tools.EmulatorX86Bios),
		"source_properties_file": deps.sourceProperties.RunfilesPath(),
		"image_input_file":       images.RunfilesPath(),
		"emulator_metadata_path": metadata.RunfilesPath(),
		"android_runtest":        deps.androidRuntest.RunfilesPath(),
		"testing_shbase":         deps.testingShbase.RunfilesPath(),
		"sdk_path":               tools.SdkPath.RunfilesPath(),
	}

	content, err := android.ExpandTemplate(stubTemplate, values)
	if err != nil {
		return StubScript{}, fmt.Errorf("device stub script: %w", err)
	}

	return StubScript{Output: executable, Content: content}, nil
}
