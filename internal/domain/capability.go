package domain

// Role is a staff member's role as carried in their auth token.
type Role string

const (
	RoleStaff      Role = "STAFF"
	RoleManager    Role = "MANAGER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Capability names an operation a role may perform. Authorization policy
// lives in this one table instead of per-handler role checks.
type Capability string

const (
	CapManageTemplates  Capability = "templates.manage"
	CapRecordReturns    Capability = "returns.record"
	CapSubmitAssessment Capability = "assessments.submit"
	CapQueryAssessments Capability = "assessments.query"
	CapReviewDamage     Capability = "damage.review"
	CapViewReputation   Capability = "reputation.view"
	CapViewAnalytics    Capability = "analytics.view"
)

var capabilityGrants = map[Capability]map[Role]bool{
	CapManageTemplates:  {RoleManager: true, RoleSuperAdmin: true},
	CapRecordReturns:    {RoleStaff: true, RoleManager: true, RoleSuperAdmin: true},
	CapSubmitAssessment: {RoleStaff: true, RoleManager: true, RoleSuperAdmin: true},
	CapQueryAssessments: {RoleStaff: true, RoleManager: true, RoleSuperAdmin: true},
	CapReviewDamage:     {RoleManager: true, RoleSuperAdmin: true},
	CapViewReputation:   {RoleStaff: true, RoleManager: true, RoleSuperAdmin: true},
	CapViewAnalytics:    {RoleManager: true, RoleSuperAdmin: true},
}

// RoleAllowed is the single capability predicate consulted by every
// operation.
func RoleAllowed(role Role, cap Capability) bool {
	return capabilityGrants[cap][role]
}
