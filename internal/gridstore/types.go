package gridstore

import (
	"fmt"

	"github.com/benbjohnson/immutable"

	"github.com/mfkiwl/flowgrid/internal/gridpath"
)

// Short aliases for the per-kind persistent map types, used by diff.go to
// keep the repetitive per-kind diff functions readable.
type (
	mapBool      = *immutable.Map[string, bool]
	mapU32       = *immutable.Map[string, uint32]
	mapS32       = *immutable.Map[string, int32]
	mapF32       = *immutable.Map[string, float32]
	mapString    = *immutable.Map[string, string]
	mapIdPairSet = *immutable.Map[string, gridpath.IdPairSet]
	mapU32Set    = *immutable.Map[string, gridpath.U32Set]
)

func segmentForU32(setPath string, elem uint32) string {
	return fmt.Sprintf("%s/%d", setPath, elem)
}
