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
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"android/emudevice/android"
)

// toolManifest is the YAML description of where the fixed host tools
// live.  Paths under the output directory are treated as generated
// artifacts; everything else is a source file.
type toolManifest struct {
	Adb             string           `yaml:"adb"`
	AdbStatic       string           `yaml:"adb_static"`
	EmulatorArm     string           `yaml:"emulator_arm"`
	EmulatorX86     string           `yaml:"emulator_x86"`
	BiosFiles       []string         `yaml:"bios_files"`
	XvfbSupport     []string         `yaml:"xvfb_support"`
	Mksdcard        string           `yaml:"mksdcard"`
	EmptySnapshotFs string           `yaml:"empty_snapshot_fs"`
	UnifiedLauncher launcherManifest `yaml:"unified_launcher"`
	AndroidRuntest  []string         `yaml:"android_runtest"`
	TestingShbase   []string         `yaml:"testing_shbase"`
	SdkPath         string           `yaml:"sdk_path"`
}

type launcherManifest struct {
	Executable string   `yaml:"executable"`
	Runfiles   []string `yaml:"runfiles"`
}

// LoadToolManifest parses a tool manifest and lowers it into a ToolDeps.
// Missing required entries are accumulated and reported together.  The
// returned ToolDeps has no DefaultProperties or PlatformApks; those are
// per-device attributes, not host tools.
func LoadToolManifest(r io.Reader, cfg android.Config) (ToolDeps, []error) {
	var m toolManifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return ToolDeps{}, []error{fmt.Errorf("tool manifest: %w", err)}
	}

	var errs []error
	require := func(value, entry string) android.Artifact {
		if value == "" {
			errs = append(errs, fmt.Errorf("tool manifest: %s must be set", entry))
			return nil
		}
		return cfg.ArtifactForPath(value)
	}
	requireList := func(values []string, entry string) android.Artifacts {
		if len(values) == 0 {
			errs = append(errs, fmt.Errorf("tool manifest: %s must not be empty", entry))
			return nil
		}
		ret := make(android.Artifacts, len(values))
		for i, v := range values {
			ret[i] = cfg.ArtifactForPath(v)
		}
		return ret
	}
	optionalList := func(values []string) android.Artifacts {
		var ret android.Artifacts
		for _, v := range values {
			ret = append(ret, cfg.ArtifactForPath(v))
		}
		return ret
	}

	launcher := require(m.UnifiedLauncher.Executable, "unified_launcher.executable")
	var runfiles android.Artifacts
	if launcher != nil {
		runfiles = append(runfiles, launcher)
	}
	runfiles = append(runfiles, optionalList(m.UnifiedLauncher.Runfiles)...)

	tools := ToolDeps{
		Adb:             require(m.Adb, "adb"),
		AdbStatic:       require(m.AdbStatic, "adb_static"),
		EmulatorArm:     require(m.EmulatorArm, "emulator_arm"),
		EmulatorX86:     require(m.EmulatorX86, "emulator_x86"),
		EmulatorX86Bios: optionalList(m.BiosFiles),
		XvfbSupport:     optionalList(m.XvfbSupport),
		Mksdcard:        require(m.Mksdcard, "mksdcard"),
		EmptySnapshotFs: require(m.EmptySnapshotFs, "empty_snapshot_fs"),
		UnifiedLauncher: LauncherBundle{
			Executable: launcher,
			RunFiles:   android.FirstUniqueArtifacts(runfiles),
		},
		AndroidRuntestDeps: requireList(m.AndroidRuntest, "android_runtest"),
		TestingShbaseDeps:  requireList(m.TestingShbase, "testing_shbase"),
		SdkPath:            require(m.SdkPath, "sdk_path"),
	}

	if len(errs) > 0 {
		return ToolDeps{}, errs
	}
	return tools, nil
}

// LoadToolManifestBytes is a convenience wrapper over LoadToolManifest.
func LoadToolManifestBytes(data []byte, cfg android.Config) (ToolDeps, []error) {
	return LoadToolManifest(bytes.NewReader(data), cfg)
}
