package domain

// Object is any record read from a case that can take part in a dependency graph.
type Object interface {
	// ObjectRef returns the identity of the record within its case.
	ObjectRef() SourceObjectRef
}

// DataSource describes an acquired data source. Its evidence image is never copied.
type DataSource struct {
	ID                 int64
	Name               string
	DeviceID           string
	TimeZone           string
	Size               int64
	MD5                string
	AcquisitionDetails string
}

// ObjectRef implements Object.
func (d *DataSource) ObjectRef() SourceObjectRef { return Ref(KindDataSource, d.ID) }

// File is a file or directory record.
type File struct {
	ID           int64
	DataSourceID int64
	// ParentID is the containing directory, zero for a data source root.
	ParentID   int64
	Name       string
	ParentPath string
	IsDir      bool
	Size       int64
	MD5        string
	SHA256     string
	MIMEType   string
	Known      KnownStatus
	Crtime     int64
	Mtime      int64
	Atime      int64
	Ctime      int64
	// HasContent is false for directories and zero-length or unallocated-only entries.
	HasContent bool
}

// ObjectRef implements Object.
func (f *File) ObjectRef() SourceObjectRef { return Ref(KindFile, f.ID) }

// Path returns the full path of the file inside its data source.
func (f *File) Path() string {
	if f.ParentPath == "" {
		return "/" + f.Name
	}
	if f.ParentPath[len(f.ParentPath)-1] == '/' {
		return f.ParentPath + f.Name
	}
	return f.ParentPath + "/" + f.Name
}

// KnownStatus mirrors the known/notable classification of a file.
type KnownStatus int

const (
	// KnownUnknown means no hash lookup classified the file.
	KnownUnknown KnownStatus = iota
	// KnownGood means the file matched a known-good hash set.
	KnownGood
	// KnownBad means the file matched a notable hash set.
	KnownBad
)

// AttributeValueType identifies which value column of an attribute is meaningful.
type AttributeValueType string

const (
	// ValueText holds a string.
	ValueText AttributeValueType = "text"
	// ValueInt64 holds an integer.
	ValueInt64 AttributeValueType = "int64"
	// ValueDouble holds a float.
	ValueDouble AttributeValueType = "double"
	// ValueArtifact holds the identifier of another artifact in the same case.
	ValueArtifact AttributeValueType = "artifact"
)

// Attribute is a typed key/value pair attached to an artifact.
type Attribute struct {
	Type         InternedString
	ValueType    AttributeValueType
	Text         string
	Int64        int64
	Double       float64
	SourceModule string
}

// Artifact is a result derived from a file by an ingest module.
type Artifact struct {
	ID           int64
	FileID       int64
	DataSourceID int64
	TypeName     InternedString
	DisplayName  string
	Attributes   []Attribute
}

// ObjectRef implements Object.
func (a *Artifact) ObjectRef() SourceObjectRef { return Ref(KindArtifact, a.ID) }

// AssociatedArtifacts returns the artifact identifiers referenced by attributes.
func (a *Artifact) AssociatedArtifacts() []int64 {
	var ids []int64
	for _, attr := range a.Attributes {
		if attr.ValueType == ValueArtifact {
			ids = append(ids, attr.Int64)
		}
	}
	return ids
}

// TagName is the label investigators apply. Destination cases de-duplicate by DisplayName.
type TagName struct {
	ID          int64
	DisplayName string
	Description string
	Color       string
	Known       KnownStatus
}

// Tag is a single application of a TagName to a file or an artifact.
// Exactly one of FileID and ArtifactID is set.
type Tag struct {
	ID         int64
	Name       TagName
	FileID     int64
	ArtifactID int64
	Comment    string
	Examiner   string
	// BeginOffset and EndOffset narrow a content tag to a byte range; both zero means the whole file.
	BeginOffset int64
	EndOffset   int64
}

// ObjectRef implements Object.
func (t *Tag) ObjectRef() SourceObjectRef { return Ref(KindTag, t.ID) }

// Target returns the ref of the tagged object.
func (t *Tag) Target() SourceObjectRef {
	if t.ArtifactID != 0 {
		return Ref(KindArtifact, t.ArtifactID)
	}
	return Ref(KindFile, t.FileID)
}

// HashSet is a named collection of known content fingerprints.
type HashSet struct {
	ID    int64
	Name  string
	Known KnownStatus
}

// ObjectRef implements Object.
func (h *HashSet) ObjectRef() SourceObjectRef { return Ref(KindHashSet, h.ID) }

// Attachment is a binary payload owned by an artifact.
type Attachment struct {
	ID         int64
	ArtifactID int64
	Name       string
	Size       int64
	MIMEType   string
}

// ObjectRef implements Object.
func (a *Attachment) ObjectRef() SourceObjectRef { return Ref(KindAttachment, a.ID) }

// HasContent reports whether the object carries a binary payload the content store must copy.
func HasContent(o Object) bool {
	switch v := o.(type) {
	case *File:
		return v.HasContent
	case *Attachment:
		return true
	default:
		return false
	}
}
