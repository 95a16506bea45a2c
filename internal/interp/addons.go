package interp

import "github.com/solarix95/neoada/internal/types"

// RegisterListAddon binds the built-in "list" method pack: length, append,
// insert, concat. Grounded on
// original_source/libneoada/addons/AdaList.cc — the "this" argument name
// is the original's own convention for the implicit instance value bound
// by an instance method call (spec.md §4.7/§6).
func RegisterListAddon(st *State) {
	anyType := st.Types.MustLookup("any")
	naturalType := st.Types.MustLookup("natural")

	st.BindFnc("list", "length", nil, func(args map[string]*Variant) (*Variant, error) {
		self, ok := args["this"]
		if !ok || self.Deref().EffectiveType().DataType != types.List {
			return NewUndefined(anyType), nil
		}
		return NewNatural(naturalType, int64(self.ListLen())), nil
	})

	st.BindPrc("list", "append", []Formal{{Name: "v", TypeName: "any", Mode: ModeIn}}, func(args map[string]*Variant) error {
		self, ok := args["this"]
		if !ok || self.Deref().EffectiveType().DataType != types.List {
			return nil
		}
		self.AppendToList(args["v"])
		return nil
	})

	st.BindPrc("list", "insert", []Formal{
		{Name: "p", TypeName: "number", Mode: ModeIn},
		{Name: "v", TypeName: "any", Mode: ModeIn},
	}, func(args map[string]*Variant) error {
		self, ok := args["this"]
		if !ok || self.Deref().EffectiveType().DataType != types.List {
			return nil
		}
		pos, ok := exactNonNegativeInt(args["p"])
		if !ok {
			return &RuntimeError{Code: "InvalidAccessValue", Info: "list insert position"}
		}
		return self.InsertIntoList(pos, args["v"])
	})

	st.BindPrc("list", "concat", []Formal{{Name: "v", TypeName: "any", Mode: ModeIn}}, func(args map[string]*Variant) error {
		self, ok := args["this"]
		if !ok || self.Deref().EffectiveType().DataType != types.List {
			return nil
		}
		other := args["v"].Deref()
		if other.EffectiveType().DataType != types.List {
			return nil
		}
		for _, item := range other.ListItems() {
			self.AppendToList(item)
		}
		return nil
	})
}

// RegisterStringAddon binds the built-in "string" method pack: length.
// Grounded on original_source/libneoada/addons/AdaString.cc.
func RegisterStringAddon(st *State) {
	naturalType := st.Types.MustLookup("natural")
	anyType := st.Types.MustLookup("any")

	st.BindFnc("string", "length", nil, func(args map[string]*Variant) (*Variant, error) {
		self, ok := args["this"]
		if !ok || self.Deref().EffectiveType().DataType != types.String {
			return NewUndefined(anyType), nil
		}
		return NewNatural(naturalType, self.LengthOperator()), nil
	})
}
