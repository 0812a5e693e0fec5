// Copyright 2025 Poiesic Systems
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

package openai

// repairJSON fixes the key quoting mistakes smaller models make in JSON mode:
//
//	{catchphrase: "..."}    -> {"catchphrase": "..."}
//	{, merit": "..."}       -> {, "merit": "..."}
//	{"a": "x",}             -> {"a": "x"}
//
// String contents are never altered.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)
	inString := false

	for i := 0; i < len(in); i++ {
		ch := in[i]

		if inString {
			out = append(out, ch)
			if ch == '\\' && i+1 < len(in) {
				i++
				out = append(out, in[i])
			} else if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			out = append(out, ch)
		case ',':
			j := skipSpace(in, i+1)
			if j < len(in) && (in[j] == '}' || in[j] == ']') {
				// trailing comma
				continue
			}
			out = append(out, ch)
			i = repairKey(in, i+1, &out) - 1
		case '{':
			out = append(out, ch)
			i = repairKey(in, i+1, &out) - 1
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

// repairKey inspects the position after '{' or ',' and, if it holds an
// unquoted or half-quoted key, writes the quoted key to out. It returns the
// index at which scanning should resume.
func repairKey(in []rune, i int, out *[]rune) int {
	j := skipSpace(in, i)
	*out = append(*out, in[i:j]...)
	if j >= len(in) || !isKeyStart(in[j]) {
		return j
	}

	end := j
	for end < len(in) && isKeyPart(in[end]) {
		end++
	}
	key := in[j:end]

	// half-quoted: key":
	if end+1 < len(in) && in[end] == '"' && in[end+1] == ':' {
		*out = append(*out, '"')
		*out = append(*out, key...)
		*out = append(*out, '"', ':')
		return end + 2
	}

	// unquoted: key:
	k := skipSpace(in, end)
	if k < len(in) && in[k] == ':' {
		*out = append(*out, '"')
		*out = append(*out, key...)
		*out = append(*out, '"')
		return end
	}

	// a bare literal such as true or null
	*out = append(*out, key...)
	return end
}

func skipSpace(in []rune, i int) int {
	for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t' || in[i] == '\r') {
		i++
	}
	return i
}

func isKeyStart(r rune) bool {
	return isLetter(r) || r == '_'
}

func isKeyPart(r rune) bool {
	return isLetter(r) || r == '_' || (r >= '0' && r <= '9')
}
