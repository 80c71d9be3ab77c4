package ensemble

import "fmt"

type MissingVariableError struct {
	Name string
}

func (err *MissingVariableError) Error() string {
	return fmt.Sprintf("missing or empty environment variable %s", err.Name)
}

type ListLengthError struct {
	Name     string
	Expected int
	Actual   int
}

func (err *ListLengthError) Error() string {
	return fmt.Sprintf("%s does not have the right number of values: "+
		"need %d, have %d", err.Name, err.Expected, err.Actual)
}

type InvalidVariableError struct {
	Name   string
	Value  string
	Reason string
}

func (err *InvalidVariableError) Error() string {
	return fmt.Sprintf("invalid value %q in %s: %s",
		err.Value, err.Name, err.Reason)
}

// NodeResolutionError is returned when the container name matches zero or
// several instances.
type NodeResolutionError struct {
	ContainerName string
	VarName       string
	NbMatches     int
}

func (err *NodeResolutionError) Error() string {
	if err.NbMatches == 0 {
		return fmt.Sprintf("container %q is not listed in %s",
			err.ContainerName, err.VarName)
	}

	return fmt.Sprintf("container %q is listed %d times in %s",
		err.ContainerName, err.NbMatches, err.VarName)
}
