package domain

// TagNameOption is one tag name offered for selection, with how often it is used.
type TagNameOption struct {
	TagName
	TagCount int
}

// HashSetOption is one hash set offered for selection, with its member count.
type HashSetOption struct {
	HashSet
	MemberCount int
}

// ModuleOptions lists what a source case offers for selection.
type ModuleOptions struct {
	TagNames []TagNameOption
	HashSets []HashSetOption
}

// CaseInfo identifies a case bundle. It is stored in the case_info table.
type CaseInfo struct {
	ID              string
	Name            string
	SchemaVersion   int
	SelectionDigest string
	Compression     Compression
	CreatedUnix     int64
}
