package document

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// timestampKey wraps store-native timestamps inside a Struct, the same way
// extended JSON wraps dates.
const timestampKey = "$timestamp"

// Canonical converts a value into the representation documents are read back
// with. Unsupported values are returned as is.
func Canonical(v any) any {
	pv, err := toValue(v)
	if err != nil {
		return v
	}
	return fromValue(pv)
}

// CanonicalFields canonicalises every field, failing on unsupported values.
func CanonicalFields(fields Fields) (Fields, error) {
	s, err := ToStruct(fields)
	if err != nil {
		return nil, err
	}
	return FromStruct(s), nil
}

func ToStruct(fields Fields) (*structpb.Struct, error) {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		pv, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out.Fields[k] = pv
	}
	return out, nil
}

func FromStruct(s *structpb.Struct) Fields {
	out := make(Fields, len(s.GetFields()))
	for k, v := range s.GetFields() {
		out[k] = fromValue(v)
	}
	return out
}

// EncodeDocument wraps a document as {"id", "seq", "fields"}.
func EncodeDocument(d Document) (*structpb.Struct, error) {
	fields, err := ToStruct(d.Fields)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":     structpb.NewStringValue(d.ID),
		"seq":    structpb.NewNumberValue(float64(d.Seq)),
		"fields": structpb.NewStructValue(fields),
	}}, nil
}

func DecodeDocument(s *structpb.Struct) (Document, error) {
	id := s.GetFields()["id"].GetStringValue()
	if id == "" {
		return Document{}, fmt.Errorf("document without id")
	}
	return Document{
		ID:     id,
		Seq:    uint64(s.GetFields()["seq"].GetNumberValue()),
		Fields: FromStruct(s.GetFields()["fields"].GetStructValue()),
	}, nil
}

// Marshal is the at-rest encoding of a document.
func Marshal(d Document) ([]byte, error) {
	s, err := EncodeDocument(d)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func Unmarshal(b []byte) (Document, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return Document{}, err
	}
	return DecodeDocument(&s)
}

// EncodeDocuments wraps a snapshot as {"documents": [...]}.
func EncodeDocuments(docs []Document) (*structpb.Struct, error) {
	values := make([]*structpb.Value, 0, len(docs))
	for _, d := range docs {
		s, err := EncodeDocument(d)
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"documents": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}, nil
}

func DecodeDocuments(s *structpb.Struct) ([]Document, error) {
	values := s.GetFields()["documents"].GetListValue().GetValues()
	docs := make([]Document, 0, len(values))
	for _, v := range values {
		d, err := DecodeDocument(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

// EncodeQuery wraps a query as {"collection", "filters": [{"field","op","value"}]}.
func EncodeQuery(q Query) (*structpb.Struct, error) {
	filters := make([]*structpb.Value, 0, len(q.Filters))
	for _, f := range q.Filters {
		value, err := toValue(f.Value)
		if err != nil {
			return nil, fmt.Errorf("filter on %q: %w", f.Field, err)
		}
		filters = append(filters, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"field": structpb.NewStringValue(f.Field),
			"op":    structpb.NewStringValue(string(f.Op)),
			"value": value,
		}}))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"collection": structpb.NewStringValue(q.Collection),
		"filters":    structpb.NewListValue(&structpb.ListValue{Values: filters}),
	}}, nil
}

func DecodeQuery(s *structpb.Struct) (Query, error) {
	q := NewQuery(s.GetFields()["collection"].GetStringValue())
	if q.Collection == "" {
		return Query{}, fmt.Errorf("query without collection")
	}
	for _, v := range s.GetFields()["filters"].GetListValue().GetValues() {
		f := v.GetStructValue().GetFields()
		op, err := ParseOp(f["op"].GetStringValue())
		if err != nil {
			return Query{}, err
		}
		q = q.Where(f["field"].GetStringValue(), op, fromValue(f["value"]))
	}
	return q, nil
}

func toValue(v any) (*structpb.Value, error) {
	switch t := v.(type) {
	case time.Time:
		return timestampValue(timestamppb.New(t)), nil
	case *timestamppb.Timestamp:
		return timestampValue(t), nil
	case []string:
		values := make([]*structpb.Value, 0, len(t))
		for _, s := range t {
			values = append(values, structpb.NewStringValue(s))
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	case []any:
		values := make([]*structpb.Value, 0, len(t))
		for _, item := range t {
			pv, err := toValue(item)
			if err != nil {
				return nil, err
			}
			values = append(values, pv)
		}
		return structpb.NewListValue(&structpb.ListValue{Values: values}), nil
	case Fields:
		s, err := ToStruct(t)
		if err != nil {
			return nil, err
		}
		return structpb.NewStructValue(s), nil
	case map[string]any:
		return toValue(Fields(t))
	default:
		return structpb.NewValue(v)
	}
}

func timestampValue(ts *timestamppb.Timestamp) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		timestampKey: structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"seconds": structpb.NewNumberValue(float64(ts.GetSeconds())),
			"nanos":   structpb.NewNumberValue(float64(ts.GetNanos())),
		}}),
	}})
}

func fromValue(v *structpb.Value) any {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return k.NumberValue
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_BoolValue:
		return k.BoolValue
	case *structpb.Value_ListValue:
		out := make([]any, 0, len(k.ListValue.GetValues()))
		for _, item := range k.ListValue.GetValues() {
			out = append(out, fromValue(item))
		}
		return out
	case *structpb.Value_StructValue:
		if ts, ok := asTimestamp(k.StructValue); ok {
			return ts
		}
		return map[string]any(FromStruct(k.StructValue))
	default:
		return nil
	}
}

func asTimestamp(s *structpb.Struct) (*timestamppb.Timestamp, bool) {
	if len(s.GetFields()) != 1 {
		return nil, false
	}
	inner, ok := s.GetFields()[timestampKey]
	if !ok {
		return nil, false
	}
	parts := inner.GetStructValue().GetFields()
	return &timestamppb.Timestamp{
		Seconds: int64(parts["seconds"].GetNumberValue()),
		Nanos:   int32(parts["nanos"].GetNumberValue()),
	}, true
}
