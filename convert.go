// Copyright 2025 The Rivaas Authors
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

package router

import (
	"strconv"
	"strings"
)

// StringParseable is implemented by a caller's parameter type that wants
// to participate in argument conversion (§4.9) via its own fromString
// factory, the Go analogue of the source's fromString/valueOf static
// method lookup. Register the factory through ParamDescriptor.Factory
// rather than expecting reflection to find it, since Go has no
// language-level static-factory convention to probe.
type StringParseable interface {
	FromString(string) (any, bool)
}

// ConvertArgs converts the bound path-parameter strings in values into
// positional arguments ordered per params, following §4.9:
//
//   - ParamString passes the bound value through verbatim.
//   - ParamInt/ParamInt64/ParamFloat64 parse; on failure the zero value is
//     used instead of failing the request.
//   - ParamBool is true when the value, case-insensitively, is one of
//     "true", "yes", "1"; false otherwise (including when the parameter
//     is absent).
//   - ParamCustom looks up the parameter's Factory; if it is nil or
//     returns ok=false, the argument is bound to nil and a
//     DiagArgumentConversionFailed diagnostic is reported (never a fatal
//     error, per §7 ArgumentConversionError).
func (reg *Registry) ConvertArgs(params []ParamDescriptor, values map[string]string) []any {
	args := make([]any, len(params))
	for i, p := range params {
		raw, present := values[p.Name]

		switch p.Kind {
		case ParamString:
			args[i] = raw
		case ParamInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				n = 0
			}
			args[i] = n
		case ParamInt64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				n = 0
			}
			args[i] = n
		case ParamFloat64:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				f = 0
			}
			args[i] = f
		case ParamBool:
			args[i] = present && isTruthy(raw)
		case ParamCustom:
			args[i] = reg.convertCustom(p, raw)
		default:
			args[i] = raw
		}
	}
	return args
}

// isTruthy implements the boolean-conversion rule of §4.9: true when the
// value, case-insensitively, is in {true, yes, 1}.
func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// convertCustom invokes p.Factory, reporting a diagnostic and binding nil
// when the factory is absent or declines the value — per §4.9's
// "an invocation that throws a bad-argument error binds none/null, not a
// fatal error for the request".
func (reg *Registry) convertCustom(p ParamDescriptor, raw string) any {
	if p.Factory == nil {
		reg.emit(DiagArgumentConversionFailed, "no factory registered for custom parameter", map[string]any{
			"param": p.Name,
		})
		return nil
	}
	val, ok := p.Factory(raw)
	if !ok {
		reg.emit(DiagArgumentConversionFailed, "factory declined value for custom parameter", map[string]any{
			"param": p.Name,
			"value": raw,
		})
		return nil
	}
	return val
}
