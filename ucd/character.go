package ucd

import "github.com/hupe1980/ucdchart/wire"

// CharacterData is the stored record of one assigned code point.
//
//	message CharacterData {
//	  uint32 code_point = 1;
//	  string name = 2;
//	  GeneralCategory general_category = 3;
//	  NameDerivation name_derivation = 4;
//	}
type CharacterData struct {
	CodePoint uint32
	// Name is the declared name, empty when the name is derived by rule.
	Name            string
	NameDerivation  NameDerivation
	GeneralCategory GeneralCategory
}

// EncodeCharacterData returns the wire encoding of c. Zero fields are omitted.
func EncodeCharacterData(c CharacterData) []byte {
	w := wire.NewWriter()
	c.writeTo(w)
	return w.Bytes()
}

func (c CharacterData) writeTo(w *wire.Writer) {
	if c.CodePoint != 0 {
		w.WriteUint32Field(1, c.CodePoint)
	}
	if c.Name != "" {
		w.WriteStringField(2, c.Name)
	}
	if c.NameDerivation != NameDerivationUnspecified {
		w.WriteUint32Field(4, uint32(c.NameDerivation))
	}
	if c.GeneralCategory != GeneralCategoryUnspecified {
		w.WriteUint32Field(3, uint32(c.GeneralCategory))
	}
}

// DecodeCharacterData decodes a CharacterData message. Unknown fields are
// skipped and unknown enum values are kept as numbers.
func DecodeCharacterData(b []byte) (CharacterData, error) {
	var c CharacterData

	r := wire.NewReader(b)
	for r.Next() {
		f := r.Field()

		var err error
		switch f.Number {
		case 1:
			c.CodePoint, err = wire.FieldAsUint32(f)
		case 2:
			c.Name, err = wire.FieldAsString(f)
		case 3:
			c.GeneralCategory, err = wire.FieldAsEnum[GeneralCategory](f)
		case 4:
			c.NameDerivation, err = wire.FieldAsEnum[NameDerivation](f)
		}

		if err != nil {
			return CharacterData{}, err
		}
	}

	if err := r.Err(); err != nil {
		return CharacterData{}, err
	}

	return c, nil
}
