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
	"fmt"
	"sort"
	"strings"
)

// ExpandTemplate substitutes %name% placeholders in a template.  Each
// placeholder must have a binding in values and must occur in the template
// exactly once, and every binding must be consumed; any mismatch between
// the template and the bindings is a contract breach between the template
// author and the caller, reported as a single error naming every offender.
func ExpandTemplate(template string, values map[string]string) (string, error) {
	used := make(map[string]int, len(values))

	buf := make([]byte, 0, 2*len(template))
	var problems []string
	i := 0
	for j := 0; j < len(template); j++ {
		if template[j] != '%' {
			continue
		}
		end := strings.IndexByte(template[j+1:], '%')
		if end < 0 {
			problems = append(problems, fmt.Sprintf("unterminated placeholder at offset %d", j))
			break
		}
		name := template[j+1 : j+1+end]
		if !validPlaceholderName(name) {
			problems = append(problems, fmt.Sprintf("invalid placeholder %q", "%"+name+"%"))
		} else if value, ok := values[name]; !ok {
			problems = append(problems, fmt.Sprintf("placeholder %q has no binding", "%"+name+"%"))
		} else {
			used[name]++
			buf = append(buf, template[i:j]...)
			buf = append(buf, value...)
			i = j + 2 + end
		}
		j += 1 + end
	}
	buf = append(buf, template[i:]...)

	for name, n := range used {
		if n > 1 {
			problems = append(problems, fmt.Sprintf("placeholder %q occurs %d times", "%"+name+"%", n))
		}
	}
	for name := range values {
		if used[name] == 0 {
			problems = append(problems, fmt.Sprintf("binding %q was never substituted", "%"+name+"%"))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return "", fmt.Errorf("template expansion failed: %s", strings.Join(problems, "; "))
	}

	return string(buf), nil
}

func validPlaceholderName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' {
			continue
		}
		return false
	}
	return true
}
