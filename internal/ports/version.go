package ports

// VersionOrderPort is the resolver's version-ordering rule. Compare
// returns a negative value when a sorts before b, zero when they rank
// equal, and a positive value when a sorts after b.
type VersionOrderPort interface {
	Compare(a string, b string) int
}
