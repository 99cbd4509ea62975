package operations

import "github.com/hackerwins/riftdoc/pkg/document/errs"

func invalidArgument(format string, args ...interface{}) error {
	return errs.InvalidArgument(format, args...)
}
