// Package authorization enforces role-based access with casbin. Roles
// live on the user record; there is no privileged-email bypass.
package authorization

import (
	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("authorization",
	fx.Provide(NewEnforcer),
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && r.act == p.act
`

// policies maps roles onto route patterns. Admin inherits provider and
// family reach through the grouping rules below.
var policies = [][]string{
	{"FAMILY", "/v1/quotes", "POST"},
	{"FAMILY", "/v1/catalog", "GET"},
	{"FAMILY", "/v1/catalog/:id", "GET"},
	{"FAMILY", "/v1/bookings", "POST"},
	{"FAMILY", "/v1/bookings", "GET"},
	{"FAMILY", "/v1/bookings/:id", "GET"},
	{"FAMILY", "/v1/bookings/:id/cancel", "POST"},
	{"FAMILY", "/v1/bookings/:id/receipt", "GET"},
	{"FAMILY", "/v1/inquiries", "POST"},
	{"FAMILY", "/v1/inquiries", "GET"},
	{"FAMILY", "/v1/payments/intents", "POST"},

	{"PROVIDER", "/v1/catalog", "GET"},
	{"PROVIDER", "/v1/catalog/:id", "GET"},
	{"PROVIDER", "/v1/bookings/:id", "GET"},
	{"PROVIDER", "/v1/provider/inquiries", "GET"},
	{"PROVIDER", "/v1/provider/bookings", "GET"},
	{"PROVIDER", "/v1/provider/bookings/:id/start", "POST"},
	{"PROVIDER", "/v1/provider/bookings/:id/complete", "POST"},

	{"ADMIN", "/v1/admin/*", "GET"},
	{"ADMIN", "/v1/admin/*", "POST"},
	{"ADMIN", "/v1/admin/*", "PATCH"},
	{"ADMIN", "/v1/admin/*", "DELETE"},
}

var roleInheritance = [][]string{
	{"ADMIN", "PROVIDER"},
	{"ADMIN", "FAMILY"},
}

func NewEnforcer(db *gorm.DB, log *zap.Logger) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", "casbin_rules")
	if err != nil {
		return nil, err
	}

	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}

	log.Named("authorization").Info("rbac enforcer ready")
	return enforcer, nil
}

func seedPolicies(enforcer *casbin.Enforcer) error {
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	return enforcer.SavePolicy()
}
