package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samwightt/gqlvet/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
type User implements Node {
  "The unique identifier"
  id: ID!
  "The user's name"
  name: String!
  "The user's email address"
  email: String @deprecated(reason: "Use contact")
  contact: String
}

interface Node {
  id: ID!
}

union SearchResult = User

enum Status {
  ACTIVE
}

input CreateUserInput {
  "The user's name"
  name: String!
  "The user's age"
  age: Int = 18
}

type Query {
  "Fetch a user by ID"
  user(id: ID!): User
  "Search users by name"
  users(query: String!, limit: Int, offset: Int): [User!]!
  search(term: String!): [SearchResult!]!
}

type Mutation {
  "Create a new user"
  createUser(input: CreateUserInput!): User!
}
`

func setupTestSchema(t *testing.T) string {
	t.Helper()
	return writeTestSchema(t, testSchema)
}

func writeTestSchema(t *testing.T, schema string) string {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.graphql")
	err := os.WriteFile(schemaPath, []byte(schema), 0644)
	require.NoError(t, err)
	return schemaPath
}

type fieldJSON struct {
	TypeName  string `json:"typeName"`
	Name      string `json:"name"`
	Arguments []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"arguments"`
	Type              string `json:"type"`
	DefaultValue      string `json:"defaultValue"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

func runFieldsJSON(t *testing.T, args ...string) []fieldJSON {
	t.Helper()
	schemaPath := setupTestSchema(t)
	stdout, _, err := cmd.ExecuteWithArgs(append([]string{"fields", "-s", schemaPath, "-f", "json"}, args...))
	require.NoError(t, err)

	var fields []fieldJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &fields))
	return fields
}

func fieldNames(fields []fieldJSON) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.TypeName != "" {
			names = append(names, f.TypeName+"."+f.Name)
		} else {
			names = append(names, f.Name)
		}
	}
	return names
}

func TestFields_TextFormat(t *testing.T) {
	schemaPath := setupTestSchema(t)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"fields", "User", "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)

	assert.Contains(t, stdout, "id: ID! # The unique identifier")
	assert.Contains(t, stdout, "name: String! # The user's name")
	assert.Contains(t, stdout, "email: String @deprecated # The user's email address")
	assert.NotContains(t, stdout, "__typename")
}

func TestFields_TextFormat_WithArguments(t *testing.T) {
	schemaPath := setupTestSchema(t)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"fields", "Query", "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)

	assert.Contains(t, stdout, "user(id: ID!): User # Fetch a user by ID")
	assert.Contains(t, stdout, "users(query: String!, limit: Int, offset: Int): [User!]!")
}

func TestFields_JSONFormat(t *testing.T) {
	fields := runFieldsJSON(t, "User")

	require.Len(t, fields, 4)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "ID!", fields[0].Type)
	assert.Equal(t, "The unique identifier", fields[0].Description)
	assert.True(t, fields[2].IsDeprecated)
	assert.Equal(t, "Use contact", fields[2].DeprecationReason)
}

func TestFields_PrettyFormat_WithArguments(t *testing.T) {
	schemaPath := setupTestSchema(t)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"fields", "Query", "-s", schemaPath, "-f", "pretty"})
	require.NoError(t, err)

	assert.Contains(t, stdout, "field")
	assert.Contains(t, stdout, "user(")
	assert.Contains(t, stdout, "id: ID!")
}

func TestFields_Meta_QueryRoot(t *testing.T) {
	fields := runFieldsJSON(t, "Query", "--meta")

	assert.Equal(t, []string{"__typename", "__schema", "__type", "user", "users", "search"}, fieldNames(fields))
	assert.Equal(t, "String!", fields[0].Type)
	assert.Equal(t, "__Schema!", fields[1].Type)
	require.Len(t, fields[2].Arguments, 1)
	assert.Equal(t, "name", fields[2].Arguments[0].Name)
}

func TestFields_Meta_OtherTypes(t *testing.T) {
	assert.Equal(t, []string{"__typename", "id"}, fieldNames(runFieldsJSON(t, "Node", "--meta")))
	assert.Equal(t, []string{"__typename"}, fieldNames(runFieldsJSON(t, "SearchResult", "--meta")))
	assert.Equal(t, []string{"__typename", "createUser"}, fieldNames(runFieldsJSON(t, "Mutation", "--meta")))
}

func TestFields_UnionWithoutMeta(t *testing.T) {
	schemaPath := setupTestSchema(t)

	stdout, stderr, err := cmd.ExecuteWithArgs([]string{"fields", "SearchResult", "-s", schemaPath, "-f", "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
	assert.Contains(t, stderr, "No fields found")
}

func TestFields_InputObject(t *testing.T) {
	fields := runFieldsJSON(t, "CreateUserInput")

	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "String!", fields[0].Type)
	assert.Equal(t, "age", fields[1].Name)
	assert.Equal(t, "18", fields[1].DefaultValue)
}

func TestFields_InputObject_Text(t *testing.T) {
	schemaPath := setupTestSchema(t)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"fields", "CreateUserInput", "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "age: Int = 18 # The user's age")
}

func TestFields_LeafType(t *testing.T) {
	schemaPath := setupTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"fields", "Status", "-s", schemaPath, "-f", "text"})
	require.Error(t, err)
	assert.Equal(t, "'Status' has no fields (kind: enum)", err.Error())

	_, _, err = cmd.ExecuteWithArgs([]string{"fields", "String", "-s", schemaPath, "-f", "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no fields (kind: scalar)")
}

func TestFields_NonExistentType_DidYouMean(t *testing.T) {
	schemaPath := setupTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"fields", "Usr", "-s", schemaPath, "-f", "text"})
	require.Error(t, err)
	assert.Equal(t, "type 'Usr' does not exist in schema, did you mean 'User'?", err.Error())
}

func TestFields_AllFields(t *testing.T) {
	fields := runFieldsJSON(t)

	assert.Equal(t, []string{
		"CreateUserInput.name",
		"CreateUserInput.age",
		"Mutation.createUser",
		"Node.id",
		"Query.user",
		"Query.users",
		"Query.search",
		"User.id",
		"User.name",
		"User.email",
		"User.contact",
	}, fieldNames(fields))
}

func TestFields_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"deprecated", []string{"--deprecated"}, []string{"User.email"}},
		{"has arg", []string{"--has-arg", "limit", "--has-arg", "offset"}, []string{"Query.users"}},
		{"returns", []string{"--returns", "User"}, []string{"Mutation.createUser", "Query.user", "Query.users"}},
		{"required on type", []string{"User", "--required"}, []string{"id", "name"}},
		{"nullable on type", []string{"User", "--nullable"}, []string{"email", "contact"}},
		{"name glob", []string{"--name", "*er"}, []string{"Query.user", "Mutation.createUser"}},
		{"name regex", []string{"--name-regex", "^(e|c)"}, []string{"Mutation.createUser", "User.email", "User.contact"}},
		{"has description", []string{"Query", "--has-description"}, []string{"user", "users"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, fieldNames(runFieldsJSON(t, tt.args...)))
		})
	}
}

func TestFields_RequiredAndNullable_MutuallyExclusive(t *testing.T) {
	schemaPath := setupTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"fields", "-s", schemaPath, "--required", "--nullable"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be used together")
}

func TestFields_InvalidFormat(t *testing.T) {
	schemaPath := setupTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"fields", "User", "-s", schemaPath, "-f", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestFields_NonExistentSchema(t *testing.T) {
	_, _, err := cmd.ExecuteWithArgs([]string{"fields", "-s", "/nonexistent/schema.graphql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist")
}

func TestFields_InvalidGraphQLSchema(t *testing.T) {
	schemaPath := writeTestSchema(t, `this is not valid graphql {{{`)

	_, _, err := cmd.ExecuteWithArgs([]string{"fields", "-s", schemaPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing error")
}
