package domain

// EnforceRequest asks whether a role may perform an action on a resource.
// The role itself comes from the identity token; the core trusts it as
// given and only gates routing with it.
type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
