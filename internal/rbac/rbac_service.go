package rbac

import (
	"fmt"
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	PermissionsForRole(role string) ([]string, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService loads the default role hierarchy and permissions into enforcer.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadDefaultPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadDefaultPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	grouping := make([][]string, 0, len(roleInheritance))
	for _, g := range roleInheritance {
		grouping = append(grouping, []string{string(g[0]), string(g[1])})
	}
	if _, err := s.enforcer.AddGroupingPolicies(grouping); err != nil {
		return fmt.Errorf("rbac: load role inheritance: %w", err)
	}

	rules := make([][]string, 0, len(defaultPermissions))
	for _, p := range defaultPermissions {
		rules = append(rules, []string{string(p.Role), p.Resource, p.Action})
	}
	if _, err := s.enforcer.AddPolicies(rules); err != nil {
		return fmt.Errorf("rbac: load permissions: %w", err)
	}

	s.logger.Info("rbac policy loaded",
		zap.Int("role_links", len(grouping)),
		zap.Int("permissions", len(rules)),
	)
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	if !Roles.Contains(req.Role) {
		s.logger.Debug("rbac unknown role", zap.String("role", req.Role))
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// PermissionsForRole lists resource:action pairs granted directly or through
// inherited roles, sorted.
func (s *service) PermissionsForRole(role string) ([]string, error) {
	if !Roles.Contains(role) {
		return []string{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(perms))
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		key := p[1] + ":" + p[2]
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}
