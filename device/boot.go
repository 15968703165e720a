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
	"encoding/json"
	"path/filepath"
	"strconv"

	"android/emudevice/android"
)

const bootMnemonic = "AndroidDeviceBoot"
const bootProgressMessage = "creating android images..."

// ResourceEstimate is the advisory resource estimate handed to the
// external scheduler for admission and placement.  It is not enforced
// here.
type ResourceEstimate struct {
	CPU      float64
	RAMMb    int
	IOWeight float64
}

// SpawnSpec describes one external process invocation: the executable and
// argv, the declared inputs and outputs, the resource estimate, and the
// executor constraints.  It is purely descriptive; running, caching and
// retrying the process belong to the external executor.
type SpawnSpec struct {
	Mnemonic        string
	ProgressMessage string
	Executable      android.Artifact
	Args            []string
	Inputs          android.Artifacts
	Outputs         android.Artifacts
	Resources       ResourceEstimate
	Constraints     map[string]string
}

// buildBootAction assembles the boot invocation of the unified launcher.
// The boot action runs during the build, so every path on the command
// line is an exec path; there is no runfiles tree to execute in.  Flag
// order is the wire contract with the launcher and must not change.
func buildBootAction(attrs DeviceAttributes, deps *commonDeps, tools ToolDeps,
	constraints map[string]string, metadata, images android.Artifact) SpawnSpec {

	rule := &android.RuleBuilder{}
	cmd := rule.Command().
		Implicits(deps.all).
		Flag("--action=boot").
		FlagWithArg("--density=", strconv.Itoa(attrs.ScreenDensity)).
		FlagWithArg("--memory=", strconv.Itoa(attrs.RAM)).
		FlagWithArg("--cache=", strconv.Itoa(attrs.Cache)).
		FlagWithArg("--vm_size=", strconv.Itoa(attrs.VMHeap)).
		FlagWithArg("--generate_output_dir=", filepath.Dir(images.ExecPath())).
		FlagWithArg("--skin=", attrs.screenSize()).
		FlagWithInput("--source_properties_file=", deps.sourceProperties).
		FlagWithInputList("--system_images=", deps.systemImages, " ").
		Flag("--flag_configured_android_tools").
		FlagWithInput("--adb=", tools.Adb).
		FlagWithInput("--emulator_x86=", tools.EmulatorX86).
		FlagWithInput("--emulator_arm=", tools.EmulatorArm).
		FlagWithInput("--adb_static=", tools.AdbStatic).
		FlagWithInput("--mksdcard=", tools.Mksdcard).
		FlagWithInput("--empty_snapshot_fs=", tools.EmptySnapshotFs).
		FlagWithInputList("--bios_files=", tools.EmulatorX86Bios, ",").
		Flag("--nocopy_system_images").
		Flag("--single_image_file").
		FlagWithInput("--android_sdk_path=", tools.SdkPath).
		FlagWithInputList("--platform_apks=", tools.PlatformApks, ",")

	if tools.DefaultProperties != nil {
		cmd.FlagWithInput("--default_properties_file=", tools.DefaultProperties)
	}

	cmd.ImplicitOutput(metadata)
	cmd.ImplicitOutput(images)

	return SpawnSpec{
		Mnemonic:        bootMnemonic,
		ProgressMessage: bootProgressMessage,
		Executable:      tools.UnifiedLauncher.Executable,
		Args:            cmd.Args(),
		Inputs:          rule.Inputs(),
		Outputs:         rule.Outputs(),
		// Boot resource estimation:
		// CPU: 100% - the emulator pegs a single cpu during boot, which is
		//   the computation heavy part of the lifecycle.
		// RAM: the emulator uses as much ram as the device rule requested
		//   (qemu's own overhead is miniscule).
		// IO: the process is IO light until the booted files are flushed
		//   to disk at the very end.
		Resources: ResourceEstimate{
			CPU:      1,
			RAMMb:    attrs.RAM,
			IOWeight: 0,
		},
		Constraints: constraints,
	}
}

type spawnDescriptor struct {
	Mnemonic        string            `json:"mnemonic"`
	ProgressMessage string            `json:"progress_message"`
	Executable      string            `json:"executable"`
	Args            []string          `json:"args"`
	Inputs          []string          `json:"inputs"`
	Outputs         []string          `json:"outputs"`
	CPU             float64           `json:"cpu"`
	RAMMb           int               `json:"ram_mb"`
	IOWeight        float64           `json:"io_weight"`
	Constraints     map[string]string `json:"constraints,omitempty"`
}

// MarshalDescriptor renders the spec as JSON for handoff to an external
// executor.  Identical specs must serialize to identical bytes so the
// executor can treat the descriptor as a cache key; encoding/json emits
// struct fields in declaration order and map keys sorted, which gives
// that guarantee.
func (s SpawnSpec) MarshalDescriptor() ([]byte, error) {
	return json.MarshalIndent(spawnDescriptor{
		Mnemonic:        s.Mnemonic,
		ProgressMessage: s.ProgressMessage,
		Executable:      s.Executable.ExecPath(),
		Args:            s.Args,
		Inputs:          s.Inputs.ExecPaths(),
		Outputs:         s.Outputs.ExecPaths(),
		CPU:             s.Resources.CPU,
		RAMMb:           s.Resources.RAMMb,
		IOWeight:        s.Resources.IOWeight,
		Constraints:     s.Constraints,
	}, "", "  ")
}
