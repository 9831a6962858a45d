package schemaio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge/typeforge/ir"
)

const userDoc = `
version: "1"
package: accounts
types:
  - name: User
    description: A registered account.
    fieldNumbers:
      id: 1
      tags: 2
    type:
      kind: object
      properties:
        - name: id
          required: true
          type:
            kind: integer
        - name: email
          required: true
          type:
            kind: string
            format:
              name: email
              category: identifier
            constraints:
              minLength: 3
        - name: tags
          type:
            kind: array
            items:
              kind: string
  - name: Role
    type:
      kind: enum
      members:
        - name: admin
          value: admin
        - name: member
          value: member
services:
  - name: Accounts
    methods:
      - name: GetUser
        input: User
        output: User
`

func TestLoadYAML(t *testing.T) {
	s, err := LoadYAML([]byte(userDoc))
	require.NoError(t, err)

	assert.Equal(t, "1", s.Version)
	assert.Equal(t, "accounts", s.Package)
	require.Len(t, s.Types, 2)

	user := s.Types[0]
	assert.Equal(t, "User", user.Name)
	require.NotNil(t, user.Metadata)
	assert.Equal(t, "A registered account.", user.Metadata.Description)
	assert.Equal(t, map[string]int{"id": 1, "tags": 2}, user.FieldNumbers)

	obj, ok := user.Type.(*ir.Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 3)
	assert.True(t, obj.Properties[0].Required)
	assert.True(t, ir.IsPrimitiveOf(obj.Properties[0].Type, ir.PrimInteger))

	email := obj.Properties[1].Type
	require.NotNil(t, email.Annotation().Format)
	assert.Equal(t, "email", email.Annotation().Format.Name)
	assert.Equal(t, ir.FormatIdentifier, email.Annotation().Format.Category)
	require.NotNil(t, email.Annotation().Constraints)
	require.NotNil(t, email.Annotation().Constraints.MinLength)
	assert.Equal(t, 3, *email.Annotation().Constraints.MinLength)

	assert.False(t, obj.Properties[2].Required)
	assert.True(t, ir.IsArray(obj.Properties[2].Type))

	role, ok := s.Types[1].Type.(*ir.Enum)
	require.True(t, ok)
	require.Len(t, role.Members, 2)
	assert.Equal(t, "admin", role.Members[0].Name)

	require.Len(t, s.Services, 1)
	require.Len(t, s.Services[0].Methods, 1)
	assert.Equal(t, "User", s.Services[0].Methods[0].Input)
}

func TestLoadJSON(t *testing.T) {
	doc := `{
  "version": "1",
  "types": [
    {
      "name": "Point",
      "type": {
        "kind": "object",
        "properties": [
          {"name": "x", "required": true, "type": {"kind": "number"}},
          {"name": "y", "required": true, "type": {"kind": "number"}}
        ]
      }
    }
  ]
}`
	s, err := Load([]byte(doc))
	require.NoError(t, err)
	def, ok := s.Lookup("Point")
	require.True(t, ok)
	obj, ok := def.Type.(*ir.Object)
	require.True(t, ok)
	assert.Len(t, obj.Properties, 2)
}

func TestLoad_CompositeKinds(t *testing.T) {
	doc := `
types:
  - name: Value
    type:
      kind: union
      types:
        - kind: string
        - kind: "null"
  - name: Bag
    type:
      kind: map
      key:
        kind: string
      value:
        kind: reference
        name: Value
  - name: Pair
    type:
      kind: tuple
      items:
        - kind: string
        - kind: integer
  - name: Stamp
    type:
      kind: date
  - name: Mode
    type:
      kind: literal
      value: fast
`
	s, err := LoadYAML([]byte(doc))
	require.NoError(t, err)

	value, _ := s.Lookup("Value")
	u, ok := value.Type.(*ir.Union)
	require.True(t, ok)
	assert.True(t, ir.UnionContainsNull(u.Types))

	bag, _ := s.Lookup("Bag")
	m, ok := bag.Type.(*ir.Map)
	require.True(t, ok)
	ref, ok := m.Value.(*ir.Reference)
	require.True(t, ok)
	assert.Equal(t, "Value", ref.Name)

	pair, _ := s.Lookup("Pair")
	tup, ok := pair.Type.(*ir.Tuple)
	require.True(t, ok)
	assert.Len(t, tup.Items, 2)

	stamp, _ := s.Lookup("Stamp")
	assert.True(t, ir.IsDate(stamp.Type))

	mode, _ := s.Lookup("Mode")
	lit, ok := mode.Type.(*ir.Literal)
	require.True(t, ok)
	assert.Equal(t, "fast", lit.Value)
}

func TestLoad_UnknownKind(t *testing.T) {
	doc := `
types:
  - name: Broken
    type:
      kind: quaternion
`
	_, err := LoadYAML([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quaternion")
}

func TestLoad_MissingName(t *testing.T) {
	doc := `
types:
  - type:
      kind: string
`
	_, err := LoadYAML([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestRoundTrip_YAML(t *testing.T) {
	s, err := LoadYAML([]byte(userDoc))
	require.NoError(t, err)

	out, err := SaveYAML(s)
	require.NoError(t, err)

	again, err := LoadYAML(out)
	require.NoError(t, err)

	require.Len(t, again.Types, 2)
	a, _ := s.Lookup("User")
	b, _ := again.Lookup("User")
	assert.True(t, ir.Equal(a.Type, b.Type))
	assert.Equal(t, a.FieldNumbers, b.FieldNumbers)
}

func TestRoundTrip_JSON(t *testing.T) {
	s, err := LoadYAML([]byte(userDoc))
	require.NoError(t, err)

	out, err := SaveJSON(s)
	require.NoError(t, err)

	again, err := LoadJSON(out)
	require.NoError(t, err)
	a, _ := s.Lookup("Role")
	b, _ := again.Lookup("Role")
	assert.True(t, ir.Equal(a.Type, b.Type))
}
