package session

// PortalPath maps an impersonated user's role to the portal entry
// point the host should fully reload into, so every piece of dependent
// session state is rebuilt from the new token.
func PortalPath(usertype string) string {
	switch usertype {
	case "buyer":
		return "/buyer"
	case "seller":
		return "/"
	case "agent":
		return "/agent/dashboard"
	default:
		return "/"
	}
}
