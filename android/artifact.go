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
	"path/filepath"
	"strings"
)

// An Artifact is an opaque handle to a file owned by the build graph.  It
// exposes the two path conventions actions care about: the build-time exec
// path, used while an action runs inside the execution root, and the
// run-time runfiles path, used after the file has been packaged into a
// runnable tree.  Artifacts are immutable; holders never create or destroy
// the underlying files.
type Artifact interface {
	// ExecPath returns the path of the file relative to the execution root.
	// For generated files this includes the output directory prefix.
	ExecPath() string

	// RunfilesPath returns the workspace-relative path of the file inside a
	// packaged runfiles tree.
	RunfilesPath() string

	// Base returns the basename of the file.
	Base() string

	// IsSource reports whether the file is an original source file rather
	// than the output of some action.
	IsSource() bool
}

// Config carries the per-invocation path roots used to mint artifacts.
type Config struct {
	// WorkspaceName is the name of the top-level workspace directory inside
	// a runfiles tree.
	WorkspaceName string

	// OutDir is the exec-root-relative directory that generated artifacts
	// are written under.
	OutDir string
}

// SourceArtifact returns an Artifact for an original source file at the
// given exec-root-relative path.
func (c Config) SourceArtifact(rel string) Artifact {
	return sourceArtifact{rel: filepath.Clean(rel)}
}

// OutputArtifact returns an Artifact for a generated file at the given
// path relative to the output directory.
func (c Config) OutputArtifact(rel string) Artifact {
	return outputArtifact{outDir: c.OutDir, rel: filepath.Clean(rel)}
}

// SourceArtifacts maps a list of exec-root-relative paths to source
// Artifacts, preserving order.
func (c Config) SourceArtifacts(rels []string) Artifacts {
	ret := make(Artifacts, len(rels))
	for i, rel := range rels {
		ret[i] = c.SourceArtifact(rel)
	}
	return ret
}

// ArtifactForPath returns a source or output Artifact depending on whether
// the path points into the output directory.
func (c Config) ArtifactForPath(path string) Artifact {
	if rel, ok := strings.CutPrefix(path, c.OutDir+"/"); ok {
		return c.OutputArtifact(rel)
	}
	return c.SourceArtifact(path)
}

type sourceArtifact struct {
	rel string
}

func (s sourceArtifact) ExecPath() string     { return s.rel }
func (s sourceArtifact) RunfilesPath() string { return s.rel }
func (s sourceArtifact) Base() string         { return filepath.Base(s.rel) }
func (s sourceArtifact) IsSource() bool       { return true }

type outputArtifact struct {
	outDir string
	rel    string
}

func (o outputArtifact) ExecPath() string     { return filepath.Join(o.outDir, o.rel) }
func (o outputArtifact) RunfilesPath() string { return o.rel }
func (o outputArtifact) Base() string         { return filepath.Base(o.rel) }
func (o outputArtifact) IsSource() bool       { return false }

// Artifacts is a list of Artifact.
type Artifacts []Artifact

// ExecPaths returns the Artifacts' exec paths in order.
func (a Artifacts) ExecPaths() []string {
	if a == nil {
		return nil
	}
	ret := make([]string, len(a))
	for i, artifact := range a {
		ret[i] = artifact.ExecPath()
	}
	return ret
}

// RunfilesPaths returns the Artifacts' runfiles paths in order.
func (a Artifacts) RunfilesPaths() []string {
	if a == nil {
		return nil
	}
	ret := make([]string, len(a))
	for i, artifact := range a {
		ret[i] = artifact.RunfilesPath()
	}
	return ret
}

// JoinExecPaths joins the exec paths of the Artifacts with sep.
func JoinExecPaths(sep string, list Artifacts) string {
	return strings.Join(list.ExecPaths(), sep)
}

// JoinRunfilesPaths joins the runfiles paths of the Artifacts with sep.
func JoinRunfilesPaths(sep string, list Artifacts) string {
	return strings.Join(list.RunfilesPaths(), sep)
}

// FirstUniqueArtifacts returns all unique elements of an Artifacts list,
// keeping the first copy of each.  The relative order of survivors is
// unchanged, which keeps dependency lists stable across builds.
func FirstUniqueArtifacts(list Artifacts) Artifacts {
	k := 0
	seen := make(map[Artifact]bool, len(list))
	ret := make(Artifacts, len(list))
	for i := 0; i < len(list); i++ {
		if seen[list[i]] {
			continue
		}
		seen[list[i]] = true
		ret[k] = list[i]
		k++
	}
	return ret[:k]
}
