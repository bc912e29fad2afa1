package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission gates a single route pattern. An empty Roles list admits every authenticated role.
type Permission struct {
	Roles  []Role `json:"roles"`
	Path   string `json:"path"`
	Method string `json:"method"`
	Skip   bool   `json:"skip"`
}

func (p Permission) Allows(role Role) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions matches a route pattern ignoring a trailing slash. Unlisted routes return the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalizePath(path)

	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return normalizePath(rp.Path) == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func normalizePath(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	for _, endpoint := range permissions.Endpoints {
		for _, role := range endpoint.Roles {
			if _, err := ParseRole(string(role)); err != nil {
				return nil, fmt.Errorf("endpoint %s %s: %w", endpoint.Method, endpoint.Path, err)
			}
		}
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
