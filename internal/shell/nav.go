// Package shell holds what every console page shares: the navigation, the
// signed-in user, flash messages and template helpers.
package shell

import "strings"

const AppTitle = "I4C Admin Portal"

type NavItem struct {
	Name   string
	Href   string
	Icon   string
	Active bool
}

var navigation = []NavItem{
	{Name: "Dashboard", Href: "/", Icon: "home"},
	{Name: "Reports", Href: "/reports", Icon: "document"},
	{Name: "Analytics", Href: "/analytics", Icon: "chart"},
}

// Navigation returns the nav items with Active set for path.
func Navigation(path string) []NavItem {
	items := make([]NavItem, len(navigation))
	for i, item := range navigation {
		item.Active = IsActive(path, item.Href)
		items[i] = item
	}
	return items
}

// IsActive matches href exactly, or as a prefix for anything but the root.
func IsActive(path, href string) bool {
	return path == href || (href != "/" && strings.HasPrefix(path, href))
}
