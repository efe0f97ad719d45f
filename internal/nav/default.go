package nav

// Default returns the admin sidebar as shipped: a dashboard leaf plus
// the three monitoring sections.
func Default() *Model {
	items := []Item{
		{Label: "Dashboard", Href: "/admin", Exact: true},
		{Label: "Communication", Section: "communication", Children: []Item{
			{Label: "Chat Monitoring", Href: "/admin/chats"},
		}},
		{Label: "Finance", Section: "finance", Children: []Item{
			{Label: "Payment Ledger", Href: "/admin/payments"},
		}},
		{Label: "Management", Section: "management", Children: []Item{
			{Label: "Users", Href: "/admin/users"},
		}},
	}
	rules := []Rule{
		{Prefix: "/admin/chats", Section: "communication"},
		{Prefix: "/admin/payments", Section: "finance"},
		{Prefix: "/admin/users", Section: "management"},
	}
	return New(items, rules)
}
