package format

// NameLookup resolves an address to a cached display name
type NameLookup interface {
	Name(address string) (string, bool)
}

// Names is a plain map lookup, handy for fixed name sets and tests
type Names map[string]string

// Name implements NameLookup
func (n Names) Name(address string) (string, bool) {
	v, ok := n[address]
	return v, ok
}

// Account returns the cached name for address when it differs from the address,
// else the first 6 and last 4 characters joined by "...".
// Addresses shorter than 10 characters overlap, e.g. "0x1234" becomes "0x1234...1234"
func Account(address string, names NameLookup) string {
	if names != nil {
		if name, ok := names.Name(address); ok && name != "" && name != address {
			return name
		}
	}
	head := prefix(address, 6)
	tail := address
	if len(address) > 4 {
		tail = address[len(address)-4:]
	}
	return head + "..." + tail
}
