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

// RuleBuilder assembles the argv of an external process action while
// keeping track of the artifacts the action reads and writes.  Flags that
// reference an artifact record it as a declared input as a side effect, so
// the argv and the input set cannot drift apart.
type RuleBuilder struct {
	commands []*RuleBuilderCommand
}

// Command returns a new RuleBuilderCommand for the rule.
func (r *RuleBuilder) Command() *RuleBuilderCommand {
	command := &RuleBuilderCommand{}
	r.commands = append(r.commands, command)
	return command
}

// Inputs returns the artifacts the rule's commands read, deduplicated in
// first-occurrence order, excluding artifacts the rule itself writes.
func (r *RuleBuilder) Inputs() Artifacts {
	outputs := make(map[Artifact]bool)
	for _, c := range r.commands {
		for _, output := range c.outputs {
			outputs[output] = true
		}
	}

	var inputs Artifacts
	for _, c := range r.commands {
		for _, input := range c.inputs {
			if !outputs[input] {
				inputs = append(inputs, input)
			}
		}
	}
	return FirstUniqueArtifacts(inputs)
}

// Outputs returns the artifacts the rule's commands write, deduplicated in
// first-occurrence order.
func (r *RuleBuilder) Outputs() Artifacts {
	var outputs Artifacts
	for _, c := range r.commands {
		outputs = append(outputs, c.outputs...)
	}
	return FirstUniqueArtifacts(outputs)
}

// RuleBuilderCommand builds the argv of a single command.  Each method
// appends one argv element (or none, for the Implicit variants) and
// returns the command to allow chaining.
type RuleBuilderCommand struct {
	args    []string
	inputs  Artifacts
	outputs Artifacts
}

// Text appends a literal argv element.
func (c *RuleBuilderCommand) Text(text string) *RuleBuilderCommand {
	c.args = append(c.args, text)
	return c
}

// Flag appends a literal flag.
func (c *RuleBuilderCommand) Flag(flag string) *RuleBuilderCommand {
	return c.Text(flag)
}

// FlagWithArg appends flag immediately followed by arg as one element.
func (c *RuleBuilderCommand) FlagWithArg(flag, arg string) *RuleBuilderCommand {
	return c.Text(flag + arg)
}

// FlagWithInput appends flag followed by the artifact's exec path, and
// records the artifact as an input.
func (c *RuleBuilderCommand) FlagWithInput(flag string, artifact Artifact) *RuleBuilderCommand {
	c.inputs = append(c.inputs, artifact)
	return c.Text(flag + artifact.ExecPath())
}

// FlagWithInputList appends flag followed by the sep-joined exec paths of
// the artifacts, and records them all as inputs.  An empty list still
// emits the bare flag.
func (c *RuleBuilderCommand) FlagWithInputList(flag string, list Artifacts, sep string) *RuleBuilderCommand {
	c.inputs = append(c.inputs, list...)
	return c.Text(flag + JoinExecPaths(sep, list))
}

// Implicit records an input that is not mentioned on the command line.
func (c *RuleBuilderCommand) Implicit(artifact Artifact) *RuleBuilderCommand {
	c.inputs = append(c.inputs, artifact)
	return c
}

// Implicits records inputs that are not mentioned on the command line.
func (c *RuleBuilderCommand) Implicits(list Artifacts) *RuleBuilderCommand {
	c.inputs = append(c.inputs, list...)
	return c
}

// ImplicitOutput records an output that is not mentioned on the command
// line.
func (c *RuleBuilderCommand) ImplicitOutput(artifact Artifact) *RuleBuilderCommand {
	c.outputs = append(c.outputs, artifact)
	return c
}

// Args returns the argv built so far.
func (c *RuleBuilderCommand) Args() []string {
	return append([]string(nil), c.args...)
}
