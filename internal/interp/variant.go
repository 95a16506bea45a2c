package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/solarix95/neoada/internal/types"
)

// sharedString is a reference-counted, copy-on-write string body. Mutation
// always detaches first; the counter is a plain int since execution is
// single-threaded (spec.md §5), matching
// original_source/libneoada/private/sharedstring.h's non-atomic refcount.
type sharedString struct {
	refCount int
	data     string
}

func newSharedString(s string) *sharedString { return &sharedString{refCount: 1, data: s} }

// sharedList is the COW body backing a List variant.
type sharedList struct {
	refCount int
	items    []*Variant
}

func newSharedList(items []*Variant) *sharedList { return &sharedList{refCount: 1, items: items} }

// Variant is the tagged runtime value every expression produces, per
// spec.md §3. Exactly one payload field is meaningful, selected by rt's
// DataType — except Reference, whose payload is ref, and Any, whose rt
// mutates to the concrete adopted type on first assignment.
type Variant struct {
	rt *types.RuntimeType

	num float64
	nat int64
	sup uint64
	byt byte
	bln bool

	str  *sharedString
	list *sharedList
	ref  *Variant
}

// NewUndefined returns an Undefined variant of the given (possibly Any)
// declared type.
func NewUndefined(rt *types.RuntimeType) *Variant { return &Variant{rt: rt} }

func NewNumber(rt *types.RuntimeType, f float64) *Variant   { return &Variant{rt: rt, num: f} }
func NewNatural(rt *types.RuntimeType, i int64) *Variant    { return &Variant{rt: rt, nat: i} }
func NewSupernatural(rt *types.RuntimeType, u uint64) *Variant { return &Variant{rt: rt, sup: u} }
func NewBoolean(rt *types.RuntimeType, b bool) *Variant     { return &Variant{rt: rt, bln: b} }
func NewByte(rt *types.RuntimeType, b byte) *Variant        { return &Variant{rt: rt, byt: b} }
func NewString(rt *types.RuntimeType, s string) *Variant {
	return &Variant{rt: rt, str: newSharedString(s)}
}
func NewList(rt *types.RuntimeType, items []*Variant) *Variant {
	return &Variant{rt: rt, list: newSharedList(items)}
}

// NewReference returns a non-owning alias of target.
func NewReference(rt *types.RuntimeType, target *Variant) *Variant {
	return &Variant{rt: rt, ref: target.Deref()}
}

// DeclaredType returns the variant's own rt, which for a Reference is the
// Reference descriptor itself (not the referent's).
func (v *Variant) DeclaredType() *types.RuntimeType { return v.rt }

// EffectiveType returns the referent's type when v is a Reference,
// otherwise v's own type — per spec.md §3's invariant that type() always
// reports the effective (dereferenced) type.
func (v *Variant) EffectiveType() *types.RuntimeType {
	if v.rt != nil && v.rt.DataType == types.Reference {
		return v.ref.EffectiveType()
	}
	return v.rt
}

// Deref returns the underlying value a Reference ultimately points to.
// Reference chains cannot form per the invariant in spec.md §3, so a
// single indirection suffices, but this walks defensively in case a
// future change relaxes that.
func (v *Variant) Deref() *Variant {
	for v.rt != nil && v.rt.DataType == types.Reference {
		v = v.ref
	}
	return v
}

// Dereference collapses a Reference variant in place: self becomes an
// independent copy of whatever it pointed to. Used when the return slot
// would otherwise outlive the scope holding its referent (spec.md §5).
func (v *Variant) Dereference() {
	target := v.Deref()
	if target == v {
		return
	}
	*v = *copyValue(target)
}

// copyValue makes a shallow value copy of other (sharing string/list
// bodies, bumping their refcount), used by Dereference and Any-adoption.
func copyValue(other *Variant) *Variant {
	cp := *other
	if cp.str != nil {
		cp.str.refCount++
	}
	if cp.list != nil {
		cp.list.refCount++
	}
	return &cp
}

// Assign implements spec.md §4.5's assign() rule table. self must not be
// called directly on a Reference from the outside — callers resolve
// lvalues to References and Assign delegates to the referent here.
func (v *Variant) Assign(other *Variant) error {
	if v.rt != nil && v.rt.DataType == types.Reference {
		return v.ref.Assign(other)
	}
	o := other.Deref()

	switch v.rt.DataType {
	case types.Any:
		*v = *copyValue(o)
		return nil
	case types.Number:
		switch o.EffectiveType().DataType {
		case types.Number:
			v.num = o.num
		case types.Natural:
			v.num = float64(o.nat)
		case types.Supernatural:
			v.num = float64(o.sup)
		default:
			return errAssignMismatch(v, o)
		}
		return nil
	case types.Natural:
		if o.EffectiveType().DataType != types.Natural {
			return errAssignMismatch(v, o)
		}
		v.nat = o.nat
		return nil
	case types.Supernatural:
		if o.EffectiveType().DataType != types.Supernatural {
			return errAssignMismatch(v, o)
		}
		v.sup = o.sup
		return nil
	case types.Boolean:
		if o.EffectiveType().DataType != types.Boolean {
			return errAssignMismatch(v, o)
		}
		v.bln = o.bln
		return nil
	case types.Byte:
		if o.EffectiveType().DataType != types.Byte {
			return errAssignMismatch(v, o)
		}
		v.byt = o.byt
		return nil
	case types.String:
		if o.EffectiveType().DataType != types.String {
			return errAssignMismatch(v, o)
		}
		if v.str != nil {
			v.str.refCount--
		}
		o.str.refCount++
		v.str = o.str
		return nil
	case types.List:
		if o.EffectiveType().DataType != types.List {
			return errAssignMismatch(v, o)
		}
		if v.list != nil {
			v.list.refCount--
		}
		o.list.refCount++
		v.list = o.list
		return nil
	default:
		return errAssignMismatch(v, o)
	}
}

func errAssignMismatch(self, other *Variant) error {
	return &RuntimeError{
		Code: "AssignmentError",
		Info: fmt.Sprintf("cannot assign %s to %s", other.EffectiveType().DataType, self.rt.DataType),
	}
}

// detachString ensures v owns a private, mutable string body.
func (v *Variant) detachString() {
	if v.str.refCount > 1 {
		v.str.refCount--
		v.str = newSharedString(v.str.data)
	}
}

// detachList ensures v owns a private, mutable list body.
func (v *Variant) detachList() {
	if v.list.refCount > 1 {
		v.list.refCount--
		items := make([]*Variant, len(v.list.items))
		for i, item := range v.list.items {
			items[i] = copyValue(item)
		}
		v.list = newSharedList(items)
	}
}

// SetString replaces the string payload of v (which must be a String
// variant), detaching first if the body is shared.
func (v *Variant) SetString(s string) {
	v.detachString()
	v.str.data = s
}

func (v *Variant) StringValue() string { return v.Deref().str.data }

// AppendToList appends value to the list, detaching first if shared.
func (v *Variant) AppendToList(value *Variant) {
	d := v.Deref()
	d.detachList()
	d.list.items = append(d.list.items, copyValue(value))
}

// InsertIntoList inserts value at position pos (0-based), detaching first.
func (v *Variant) InsertIntoList(pos int, value *Variant) error {
	d := v.Deref()
	if pos < 0 || pos > len(d.list.items) {
		return &RuntimeError{Code: "InvalidAccessValue", Info: "list insert index out of range"}
	}
	d.detachList()
	items := d.list.items
	items = append(items, nil)
	copy(items[pos+1:], items[pos:])
	items[pos] = copyValue(value)
	d.list.items = items
	return nil
}

// TakeFromList removes and returns the element at pos.
func (v *Variant) TakeFromList(pos int) (*Variant, error) {
	d := v.Deref()
	if pos < 0 || pos >= len(d.list.items) {
		return nil, &RuntimeError{Code: "InvalidAccessValue", Info: "list index out of range"}
	}
	d.detachList()
	taken := d.list.items[pos]
	d.list.items = append(d.list.items[:pos], d.list.items[pos+1:]...)
	return taken, nil
}

// WriteAccess returns a Reference into element pos of the list, detaching
// the body first so mutation through the reference never mutates a shared
// copy.
func (v *Variant) WriteAccess(pos int, refType *types.RuntimeType) (*Variant, error) {
	d := v.Deref()
	if pos < 0 || pos >= len(d.list.items) {
		return nil, &RuntimeError{Code: "InvalidAccessValue", Info: "list index out of range"}
	}
	d.detachList()
	return NewReference(refType, d.list.items[pos]), nil
}

// ReadAccess returns the element at pos without detaching.
func (v *Variant) ReadAccess(pos int) (*Variant, error) {
	d := v.Deref()
	if pos < 0 || pos >= len(d.list.items) {
		return nil, &RuntimeError{Code: "InvalidAccessValue", Info: "list index out of range"}
	}
	return d.list.items[pos], nil
}

func (v *Variant) ReverseList() {
	d := v.Deref()
	d.detachList()
	items := d.list.items
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

func (v *Variant) ListLen() int  { return len(v.Deref().list.items) }
func (v *Variant) ListItems() []*Variant { return v.Deref().list.items }

// ToBool coerces v to a boolean per the unary/logical coercion rule in
// spec.md §4.4 ("and, or, xor operands coerced to boolean"): Natural,
// Supernatural, Boolean, Byte participate; anything else fails.
func (v *Variant) ToBool() (bool, bool) {
	d := v.Deref()
	switch d.EffectiveType().DataType {
	case types.Boolean:
		return d.bln, true
	case types.Natural:
		return d.nat != 0, true
	case types.Supernatural:
		return d.sup != 0, true
	case types.Byte:
		return d.byt != 0, true
	default:
		return false, false
	}
}

// LengthOperator implements unary '#': strings → byte length, lists →
// element count, primitives → 1, undefined (including an unassigned `any`
// slot) → 0 (spec.md §4.4).
func (v *Variant) LengthOperator() int64 {
	d := v.Deref()
	switch d.EffectiveType().DataType {
	case types.Undefined, types.Any:
		return 0
	case types.String:
		return int64(len(d.str.data))
	case types.List:
		return int64(len(d.list.items))
	default:
		return 1
	}
}

// String renders v for host/print consumption.
func (v *Variant) String() string {
	d := v.Deref()
	switch d.EffectiveType().DataType {
	case types.Undefined:
		return ""
	case types.Number:
		return strconv.FormatFloat(d.num, 'g', -1, 64)
	case types.Natural:
		return strconv.FormatInt(d.nat, 10)
	case types.Supernatural:
		return strconv.FormatUint(d.sup, 10)
	case types.Boolean:
		if d.bln {
			return "true"
		}
		return "false"
	case types.Byte:
		return strconv.Itoa(int(d.byt))
	case types.String:
		return d.str.data
	case types.List:
		parts := make([]string, len(d.list.items))
		for i, it := range d.list.items {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// exact32BitInt reports whether f is an integral value representable in a
// signed 32-bit range — the fast comparison path for Number vs integer
// types, grounded on original_source/libneoada/variant.cc's
// exact32BitInt helper.
func exact32BitInt(f float64) (int64, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

// exact64BitDbl reports whether f is an integral value representable
// exactly as a float64 (fits in 53 bits of mantissa).
func exact64BitDbl(f float64) (int64, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	const maxExact = 1 << 53
	if f < -maxExact || f > maxExact {
		return 0, false
	}
	return int64(f), true
}

// Spaceship is the three-way compare of spec.md §4.5/§9: -1/0/+1 for
// ordered operands, and ok=false for incomparable/undefined ones.
func Spaceship(a, b *Variant) (cmp int, ok bool) {
	ad, bd := a.Deref(), b.Deref()
	at, bt := ad.EffectiveType().DataType, bd.EffectiveType().DataType

	if at == types.Undefined || bt == types.Undefined {
		return 0, false
	}

	if at == bt {
		switch at {
		case types.Number:
			return cmpFloat(ad.num, bd.num), true
		case types.Natural:
			return cmpInt(ad.nat, bd.nat), true
		case types.Supernatural:
			return cmpUint(ad.sup, bd.sup), true
		case types.Boolean:
			return cmpBool(ad.bln, bd.bln), true
		case types.Byte:
			return cmpInt(int64(ad.byt), int64(bd.byt)), true
		case types.String:
			return cmpString(ad.str.data, bd.str.data), true
		default:
			return 0, false
		}
	}

	// Mixed numeric comparisons use the exact-integer/exact-double
	// widening fast paths (spec.md §4.5); any other type mismatch is
	// incomparable.
	if isNumeric(at) && isNumeric(bt) {
		return compareMixedNumeric(ad, at, bd, bt)
	}
	return 0, false
}

func isNumeric(dt types.DataType) bool {
	switch dt {
	case types.Number, types.Natural, types.Supernatural, types.Byte:
		return true
	}
	return false
}

func compareMixedNumeric(a *Variant, at types.DataType, b *Variant, bt types.DataType) (int, bool) {
	af, aIsFloat := asFloatIfNumber(a, at)
	bf, bIsFloat := asFloatIfNumber(b, bt)
	if aIsFloat || bIsFloat {
		var av, bv float64
		if aIsFloat {
			av = af
		} else if i, exact := asExactInt(a, at); exact {
			av = float64(i)
		} else {
			return 0, false
		}
		if bIsFloat {
			bv = bf
		} else if i, exact := asExactInt(b, bt); exact {
			bv = float64(i)
		} else {
			return 0, false
		}
		return cmpFloat(av, bv), true
	}
	ai, _ := asExactInt(a, at)
	bi, _ := asExactInt(b, bt)
	return cmpInt(ai, bi), true
}

func asFloatIfNumber(v *Variant, dt types.DataType) (float64, bool) {
	if dt == types.Number {
		return v.num, true
	}
	return 0, false
}

func asExactInt(v *Variant, dt types.DataType) (int64, bool) {
	switch dt {
	case types.Natural:
		return v.nat, true
	case types.Supernatural:
		if v.sup > math.MaxInt64 {
			f := float64(v.sup)
			return exact64BitDbl(f)
		}
		return int64(v.sup), true
	case types.Byte:
		return int64(v.byt), true
	case types.Number:
		if i, ok := exact32BitInt(v.num); ok {
			return i, true
		}
		return exact64BitDbl(v.num)
	}
	return 0, false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func cmpString(a, b string) int {
	return strings.Compare(a, b)
}
