package member

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffnb/core-maid/internal/membertype"
)

func TestClassify(t *testing.T) {
	t.Run("classifies every top-level declaration", func(t *testing.T) {
		// Arrange
		src := `package test

import "fmt"

const Answer = 42

var (
	_     = fmt.Sprint
	count int
)

type Reader interface{ Read() }

type User struct{ Name string }

type ID int

type (
	Alias = string
	Other struct{}
)

func NewUser() *User { return &User{} }

func NewID() ID { return 0 }

func NewNothing() {}

func NewSlice() []User { return nil }

func helper() {}

func init() {}

func (u *User) Greet() string { return u.Name }

type Box[T any] struct{ v T }

func (b Box[T]) Get() T { return b.v }
`
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments)
		require.NoError(t, err)

		// Act
		members := Classify(file)

		// Assert
		type got struct {
			kind membertype.Kind
			name string
		}
		actual := make([]got, len(members))
		for i, m := range members {
			actual[i] = got{m.Kind, m.Name}
			assert.Equal(t, i, m.Index)
		}
		assert.Equal(t, []got{
			{membertype.Constant, "Answer"},
			{membertype.Variable, "count"},
			{membertype.Interface, "Reader"},
			{membertype.Struct, "User"},
			{membertype.Type, "ID"},
			{membertype.Type, "Alias"},
			{membertype.Constructor, "NewUser"},
			{membertype.Constructor, "NewID"},
			{membertype.Function, "NewNothing"},
			{membertype.Function, "NewSlice"},
			{membertype.Function, "helper"},
			{membertype.Function, "init"},
			{membertype.Method, "User.Greet"},
			{membertype.Struct, "Box"},
			{membertype.Method, "Box.Get"},
		}, actual)
	})

	t.Run("returns nothing for a file with only imports", func(t *testing.T) {
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, "test.go", "package test\n\nimport _ \"embed\"\n", 0)
		require.NoError(t, err)

		assert.Empty(t, Classify(file))
	})
}

func TestReceiverName(t *testing.T) {
	tests := map[string]string{
		"*Foo":       "Foo",
		"Foo":        "Foo",
		"Foo[T]":     "Foo",
		"*Foo[K, V]": "Foo",
		"pkg.Foo":    "Foo",
		"func()":     "",
	}
	for expr, want := range tests {
		t.Run(expr, func(t *testing.T) {
			e, err := parser.ParseExpr(expr)
			require.NoError(t, err)
			assert.Equal(t, want, ReceiverName(e))
		})
	}
}
