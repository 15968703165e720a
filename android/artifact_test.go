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

package android

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testConfig = Config{WorkspaceName: "main", OutDir: "out"}

func TestSourceArtifactPaths(t *testing.T) {
	a := testConfig.SourceArtifact("system_images/arm/source.properties")
	if g, w := a.ExecPath(), "system_images/arm/source.properties"; g != w {
		t.Errorf("ExecPath: expected %q, got %q", w, g)
	}
	if g, w := a.RunfilesPath(), "system_images/arm/source.properties"; g != w {
		t.Errorf("RunfilesPath: expected %q, got %q", w, g)
	}
	if g, w := a.Base(), "source.properties"; g != w {
		t.Errorf("Base: expected %q, got %q", w, g)
	}
	if !a.IsSource() {
		t.Error("expected source artifact")
	}
}

func TestOutputArtifactPaths(t *testing.T) {
	a := testConfig.OutputArtifact("device_images/userdata_images.dat")
	if g, w := a.ExecPath(), "out/device_images/userdata_images.dat"; g != w {
		t.Errorf("ExecPath: expected %q, got %q", w, g)
	}
	if g, w := a.RunfilesPath(), "device_images/userdata_images.dat"; g != w {
		t.Errorf("RunfilesPath: expected %q, got %q", w, g)
	}
	if a.IsSource() {
		t.Error("expected generated artifact")
	}
}

func TestArtifactForPath(t *testing.T) {
	if a := testConfig.ArtifactForPath("out/gen/file.img"); a.IsSource() {
		t.Error("path under out dir should be a generated artifact")
	} else if g, w := a.ExecPath(), "out/gen/file.img"; g != w {
		t.Errorf("ExecPath: expected %q, got %q", w, g)
	}
	if a := testConfig.ArtifactForPath("tools/adb"); !a.IsSource() {
		t.Error("path outside out dir should be a source artifact")
	}
	// "outfoo" is not under "out/".
	if a := testConfig.ArtifactForPath("outfoo/adb"); !a.IsSource() {
		t.Error("sibling of out dir should be a source artifact")
	}
}

func TestJoinPaths(t *testing.T) {
	list := Artifacts{
		testConfig.SourceArtifact("a/one"),
		testConfig.OutputArtifact("b/two"),
	}
	if g, w := JoinExecPaths(" ", list), "a/one out/b/two"; g != w {
		t.Errorf("JoinExecPaths: expected %q, got %q", w, g)
	}
	if g, w := JoinRunfilesPaths(",", list), "a/one,b/two"; g != w {
		t.Errorf("JoinRunfilesPaths: expected %q, got %q", w, g)
	}
	if g := JoinExecPaths(",", nil); g != "" {
		t.Errorf("JoinExecPaths(nil): expected empty, got %q", g)
	}
}

func TestFirstUniqueArtifacts(t *testing.T) {
	a := testConfig.SourceArtifact("a")
	b := testConfig.SourceArtifact("b")
	c := testConfig.OutputArtifact("a")

	got := FirstUniqueArtifacts(Artifacts{a, b, a, c, b, a})
	want := Artifacts{a, b, c}
	if diff := cmp.Diff(want.ExecPaths(), got.ExecPaths()); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}
