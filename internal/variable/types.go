package variable

// Mode is one column of a collection: every variable in the collection holds
// one value per mode.
type Mode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Collection is a local, mutable collection of variables.
// Modes are in creation order; a collection always has at least one mode.
type Collection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Modes []Mode `json:"modes"`
}

// ModeByName returns the mode called name, if the collection has one.
func (c *Collection) ModeByName(name string) (Mode, bool) {
	for _, m := range c.Modes {
		if m.Name == name {
			return m, true
		}
	}
	return Mode{}, false
}

// Variable is a local variable, or a library variable that has been imported
// into the local scope (Key is set and CollectionID is empty).
type Variable struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	CollectionID string            `json:"collection_id,omitempty"`
	Kind         Kind              `json:"resolved_type"`
	Description  string            `json:"description,omitempty"`
	Scopes       []string          `json:"scopes,omitempty"`
	CodeSyntax   map[string]string `json:"code_syntax,omitempty"`
	Values       map[string]Value  `json:"-"` // keyed by mode ID
	Key          string            `json:"key,omitempty"`
}

// Imported reports whether the variable is an imported library variable.
func (v *Variable) Imported() bool {
	return v.Key != ""
}

// LibraryCollection is a read-only collection published by a team library.
type LibraryCollection struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	LibraryName string `json:"library_name"`
}

// LibraryVariable is a read-only variable published by a team library.
// It must be imported by key before another variable can alias it.
type LibraryVariable struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	CollectionKey string `json:"collection_key"`
	Kind          Kind   `json:"resolved_type"`
}

// CollectionRef is either a *Collection (local) or a LibraryCollection
// (remote). The interface is sealed.
type CollectionRef interface {
	CollectionName() string
	collectionRef()
}

func (c *Collection) CollectionName() string       { return c.Name }
func (c *Collection) collectionRef()               {}
func (c LibraryCollection) CollectionName() string { return c.Name }
func (c LibraryCollection) collectionRef()         {}

// VariableRef is either a *Variable (local, has an ID) or a LibraryVariable
// (remote, has a key). The interface is sealed.
type VariableRef interface {
	VariableName() string
	variableRef()
}

func (v *Variable) VariableName() string       { return v.Name }
func (v *Variable) variableRef()               {}
func (v LibraryVariable) VariableName() string { return v.Name }
func (v LibraryVariable) variableRef()         {}
