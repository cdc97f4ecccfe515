package authz

// Gatekeeper — единая точка проверки прав. Сервисы не принимают
// собственных решений о доверии, они лишь спрашивают Gatekeeper.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Can отвечает, разрешено ли действие для набора пермишенов роли.
func (g *Gatekeeper) Can(perms map[string]bool, permission string) bool {
	if perms == nil {
		return false
	}

	if perms[Superuser] {
		return true
	}

	return perms[permission]
}
