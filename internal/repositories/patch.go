package repositories

import (
	"fmt"
	"strings"

	"botpanel-backend/internal/models"
)

// patchBuilder accumulates SET clauses for a coalesce update. The
// initial args occupy the leading placeholders (scope flag, telefono,
// id), so column placeholders continue after them. Omitted fields never
// produce a clause; explicit nulls clear to the column's zero value.
type patchBuilder struct {
	sets []string
	args []interface{}
}

func newPatchBuilder(args ...interface{}) *patchBuilder {
	return &patchBuilder{
		sets: []string{"updated_at = NOW()"},
		args: args,
	}
}

func (b *patchBuilder) set(col string, val interface{}) {
	b.args = append(b.args, val)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *patchBuilder) text(col string, o models.Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null {
		b.set(col, "")
		return
	}
	b.set(col, o.Value)
}

func (b *patchBuilder) boolean(col string, o models.Optional[bool]) {
	if !o.Set {
		return
	}
	if o.Null {
		b.set(col, false)
		return
	}
	b.set(col, o.Value)
}

func (b *patchBuilder) clause() string {
	return strings.Join(b.sets, ", ")
}
