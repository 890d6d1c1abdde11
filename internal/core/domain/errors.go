package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptySelection is returned when a selection names nothing, or resolves to zero objects.
	ErrEmptySelection = zerr.New("nothing selected for export")

	// ErrNoTagsSelected is returned when hash set filtering is requested without any tag.
	// It is an ErrEmptySelection.
	ErrNoTagsSelected = zerr.Wrap(ErrEmptySelection, "no tags selected")

	// ErrNoHashSetSelected is returned when hash set members are to be included but no hash set is chosen.
	// It is an ErrEmptySelection.
	ErrNoHashSetSelected = zerr.Wrap(ErrEmptySelection, "no hash set selected for export")

	// ErrInvalidSelection is returned when a selection carries malformed values.
	ErrInvalidSelection = zerr.New("invalid selection")

	// ErrUnknownTagName is returned when a selected tag name does not exist in the source case.
	ErrUnknownTagName = zerr.New("unknown tag name")

	// ErrUnknownHashSet is returned when a selected hash set does not exist in the source case.
	ErrUnknownHashSet = zerr.New("unknown hash set")

	// ErrUnresolvableReference is returned when a required dependency cannot be located in the source case.
	ErrUnresolvableReference = zerr.New("unresolvable reference")

	// ErrDependencyFailed marks an object skipped because something it depends on failed.
	ErrDependencyFailed = zerr.New("dependency failed")

	// ErrIO is the parent of every copy or write failure.
	ErrIO = zerr.New("i/o failure")

	// ErrSourceRead is returned when reading an object's content from the source case fails.
	// It is a per-object failure.
	ErrSourceRead = zerr.Wrap(ErrIO, "failed to read source content")

	// ErrContentWrite is returned when the content area of the destination cannot be written.
	// It indicates the destination itself is unwritable and is structural.
	ErrContentWrite = zerr.Wrap(ErrIO, "failed to write destination content")

	// ErrCancelled is returned when the user requested cancellation.
	ErrCancelled = zerr.New("build cancelled")

	// ErrStructural is the parent of every failure that makes the destination case unusable.
	ErrStructural = zerr.New("destination case is structurally unsound")

	// ErrDestinationExists is returned when the destination case directory already exists.
	ErrDestinationExists = zerr.Wrap(ErrStructural, "destination case already exists")

	// ErrDestinationLocked is returned when another build owns the destination.
	ErrDestinationLocked = zerr.Wrap(ErrStructural, "destination case is locked by another build")

	// ErrCaseOpenFailed is returned when a case database cannot be opened.
	ErrCaseOpenFailed = zerr.New("failed to open case database")

	// ErrCaseCreateFailed is returned when the destination schema store cannot be created.
	ErrCaseCreateFailed = zerr.Wrap(ErrStructural, "failed to create destination case")

	// ErrCaseWriteFailed is returned when a record cannot be written to the destination schema store.
	// The savepoint around the record is rolled back, so it is a per-object failure.
	ErrCaseWriteFailed = zerr.Wrap(ErrIO, "failed to write case record")

	// ErrCaseCloseFailed is returned when the destination schema store cannot be flushed.
	ErrCaseCloseFailed = zerr.Wrap(ErrStructural, "failed to close destination case")

	// ErrCaseReadFailed is returned when a record cannot be read from a case.
	ErrCaseReadFailed = zerr.New("failed to read case record")

	// ErrVerificationFailed is returned when the finalized case contains a dangling reference.
	ErrVerificationFailed = zerr.Wrap(ErrStructural, "portable case verification failed")

	// ErrObjectNotFound is returned by case lookups when no record has the requested identifier.
	ErrObjectNotFound = zerr.New("object not found in case")

	// ErrContentNotFound is returned when an object has no readable content.
	ErrContentNotFound = zerr.New("content not found")

	// ErrInvalidContentLocation is returned when a content location does not name a payload
	// inside the content area. It is an ErrContentNotFound.
	ErrInvalidContentLocation = zerr.Wrap(ErrContentNotFound, "invalid content location")

	// ErrNodeAlreadyExists is returned when adding a ref that is already part of the graph.
	ErrNodeAlreadyExists = zerr.New("node already exists")

	// ErrMissingDependency is returned when a node references a dependency that is not in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when the dependency graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrInvalidTransition is returned when the build state machine is driven out of order.
	ErrInvalidTransition = zerr.New("invalid build state transition")

	// ErrUnsupportedSettingsVersion is returned for settings written by a newer module version.
	ErrUnsupportedSettingsVersion = zerr.New("unsupported settings version")

	// ErrInvalidSettings is returned when settings have the wrong type or malformed fields.
	ErrInvalidSettings = zerr.New("invalid module settings")

	// ErrModuleNotFound is returned when no report module is registered under a name.
	ErrModuleNotFound = zerr.New("report module not found")

	// ErrModuleAlreadyRegistered is returned when two modules share a name.
	ErrModuleAlreadyRegistered = zerr.New("report module already registered")

	// ErrModuleNameRequired is returned when a report module has an empty name.
	ErrModuleNameRequired = zerr.New("report module name required")

	// ErrOutputPathRequired is returned when a module that needs an output path is given none.
	ErrOutputPathRequired = zerr.New("output path required")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigWriteFailed is returned when the settings file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write config file")

	// ErrExportFailed is returned by the host when a build ends in the Failed state.
	ErrExportFailed = zerr.New("export failed")
)

// classifiedError ties a cause to one of the sentinel kinds above so that
// errors.Is matches both the kind and anything in the cause chain.
type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *classifiedError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// Classify marks cause as an instance of kind. It returns nil if cause is nil.
func Classify(kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{kind: kind, cause: cause}
}

// Annotate returns an error that matches kind under errors.Is and carries key/value metadata.
// Further metadata can be chained with zerr.With.
func Annotate(kind error, key string, value any) error {
	return zerr.With(zerr.Wrap(kind, ""), key, value)
}
