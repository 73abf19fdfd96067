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
	"sync/atomic"

	"github.com/jaxgo/router/mediatype"
)

// EndpointInfo is an introspection-only projection of a registered
// endpoint: method, path template, media constraints, and parameter
// names, without the handler itself. Grounded in the teacher's
// RouteInfo/Router.Routes() accessor.
type EndpointInfo struct {
	Method       string
	PathTemplate string
	Consumes     mediatype.Group
	Produces     mediatype.Group
	ParamNames   []string
}

// Routes lists every endpoint registered so far, grouped by (method,
// template) in the order each pair was first registered, and in
// registration order within a pair.
// It is safe to call both before and after Freeze; before Freeze it walks
// the in-progress registration state under the same lock Register uses,
// after Freeze it reads the published, immutable snapshot without
// locking.
func (reg *Registry) Routes() []EndpointInfo {
	if livePtr := atomic.LoadPointer(&reg.live); livePtr != nil {
		s := (*state)(livePtr)
		return routeInfoFromGroups(s.groups)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	groups := make([]*endpointGroup, 0, len(reg.groupOrder))
	for _, key := range reg.groupOrder {
		groups = append(groups, reg.buildingGroups[key])
	}
	return routeInfoFromGroups(groups)
}

func routeInfoFromGroups(groups []*endpointGroup) []EndpointInfo {
	var infos []EndpointInfo
	for _, g := range groups {
		for _, ep := range g.endpoints {
			names := make([]string, len(ep.Params))
			for i, p := range ep.Params {
				names[i] = p.Name
			}
			infos = append(infos, EndpointInfo{
				Method:       ep.Method,
				PathTemplate: ep.Template,
				Consumes:     ep.Consumes,
				Produces:     ep.Produces,
				ParamNames:   names,
			})
		}
	}
	return infos
}
