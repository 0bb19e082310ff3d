package reader

import "fmt"

// FormField is one interactive field from the document's AcroForm.
type FormField struct {
	Name    string       // partial field name (/T)
	Tooltip string       // alternate description (/TU)
	Type    string       // field type: "Tx", "Btn", "Ch", "Sig"
	Value   string       // current value (/V), names without the slash
	Flags   int          // field flags (/Ff)
	Rect    Rectangle    // widget rectangle, zero for non-widget parents
	Kids    []*FormField // child widgets of a grouped field
}

// Radio field flag bit (table 8.70 of the PDF specification).
const ffRadio = 1 << 15

// IsRadioGroup reports whether the field is a radio button group.
func (f *FormField) IsRadioGroup() bool {
	return f.Type == "Btn" && f.Flags&ffRadio != 0
}

// HasAcroForm reports whether the document carries an interactive form.
func (d *Document) HasAcroForm() bool {
	catalog, err := d.Catalog()
	if err != nil {
		return false
	}
	_, ok := catalog["AcroForm"]
	return ok
}

// FormFields returns the document's top-level interactive fields in
// declaration order. Documents without an AcroForm yield an empty slice.
func (d *Document) FormFields() ([]*FormField, error) {
	catalog, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	acroObj, ok := catalog["AcroForm"]
	if !ok {
		return []*FormField{}, nil
	}
	acro, err := d.resolveDict(acroObj)
	if err != nil {
		return nil, fmt.Errorf("reader: resolving AcroForm: %w", err)
	}

	fields := []*FormField{}
	for i, ref := range acro.GetArray("Fields") {
		f, err := d.parseField(ref)
		if err != nil {
			return nil, fmt.Errorf("reader: AcroForm field %d: %w", i, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// FormField returns the top-level field with the given partial name.
func (d *Document) FormField(name string) (*FormField, error) {
	fields, err := d.FormFields()
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("reader: no form field named %q", name)
}

func (d *Document) parseField(o Object) (*FormField, error) {
	dict, err := d.resolveDict(o)
	if err != nil {
		return nil, err
	}

	f := &FormField{
		Name:    dict.GetString("T"),
		Tooltip: dict.GetString("TU"),
		Type:    string(dict.GetName("FT")),
	}
	f.Flags, _ = dict.GetInt("Ff")

	switch v := dict["V"].(type) {
	case String:
		f.Value = string(v)
	case Name:
		f.Value = string(v)
	}
	if rect, ok := dict["Rect"]; ok {
		if f.Rect, err = toRectangle(rect); err != nil {
			return nil, err
		}
	}

	for _, kid := range dict.GetArray("Kids") {
		kf, err := d.parseField(kid)
		if err != nil {
			return nil, err
		}
		f.Kids = append(f.Kids, kf)
	}
	return f, nil
}
