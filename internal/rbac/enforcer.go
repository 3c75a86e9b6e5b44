package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Role names carried in the JWT role claim.
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleApprover = "approver"
	RoleEmployee = "employee"
)

// defaultPolicies is the static permission matrix. Budget approval is
// deliberately split from budget creation so the submitter can never approve
// their own budget role-wise.
var defaultPolicies = [][]string{
	{RoleHR, "employee", "read"},
	{RoleHR, "employee", "write"},
	{RoleHR, "attendance", "read"},
	{RoleHR, "attendance", "write"},
	{RoleHR, "payroll", "read"},
	{RoleHR, "payroll", "create"},
	{RoleHR, "payroll", "update"},
	{RoleHR, "payroll", "pay"},
	{RoleHR, "payroll", "release"},
	{RoleHR, "payroll", "delete"},
	{RoleHR, "budget", "read"},
	{RoleHR, "budget", "create"},
	{RoleHR, "budget", "submit"},

	{RoleApprover, "payroll", "read"},
	{RoleApprover, "budget", "read"},
	{RoleApprover, "budget", "approve"},
	{RoleApprover, "budget", "release"},

	{RoleEmployee, "payroll", "read"},
}

var roleInheritance = [][]string{
	{RoleAdmin, RoleHR},
	{RoleAdmin, RoleApprover},
}

// NewEnforcer builds an in-memory casbin enforcer over the static policy set.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range roleInheritance {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
