package ensemble

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	ServiceNameVar   = "SERVICE_NAME"
	ContainerNameVar = "CONTAINER_NAME"
	BaseDataDirVar   = "BASE_DATA_DIR"

	SnapRetainCountVar = "MAX_SNAPSHOT_RETAIN_COUNT"
	PurgeIntervalVar   = "PURGE_INTERVAL"
	JVMOptsVar         = "JVM_OPTS"
)

type LookupFunc func(string) (string, bool)

var nonWordCharRE = regexp.MustCompile(`[^\w]`)

// EnvVarName turns an arbitrary string, usually a service name, into a
// valid environment variable prefix.
func EnvVarName(s string) string {
	return strings.ToUpper(nonWordCharRE.ReplaceAllString(s, "_"))
}

type VarNames struct {
	Instances     string
	InstanceIds   string
	ClientPorts   string
	PeerPorts     string
	ElectionPorts string
}

func NewVarNames(serviceName string) VarNames {
	prefix := EnvVarName(serviceName)

	return VarNames{
		Instances:     prefix + "_INSTANCES",
		InstanceIds:   prefix + "_INSTANCE_IDS",
		ClientPorts:   prefix + "_INSTANCE_CLIENT_PORTS",
		PeerPorts:     prefix + "_INSTANCE_PEER_PORTS",
		ElectionPorts: prefix + "_INSTANCE_LEADER_ELECTION_PORTS",
	}
}

type Env struct {
	ServiceName       string
	ContainerName     string
	BaseDataDirectory string

	VarNames VarNames

	Instances     []string
	InstanceIds   []string
	ClientPorts   []string
	PeerPorts     []string
	ElectionPorts []string

	SnapRetainCount *int
	PurgeInterval   *int

	JVMOpts string
}

func ReadEnv(lookup LookupFunc) (*Env, error) {
	var env Env

	required := []struct {
		name  string
		value *string
	}{
		{ServiceNameVar, &env.ServiceName},
		{ContainerNameVar, &env.ContainerName},
		{BaseDataDirVar, &env.BaseDataDirectory},
	}

	for _, v := range required {
		value, err := lookupRequired(lookup, v.name)
		if err != nil {
			return nil, err
		}

		*v.value = value
	}

	env.VarNames = NewVarNames(env.ServiceName)

	lists := []struct {
		name  string
		value *[]string
	}{
		{env.VarNames.Instances, &env.Instances},
		{env.VarNames.InstanceIds, &env.InstanceIds},
		{env.VarNames.ClientPorts, &env.ClientPorts},
		{env.VarNames.PeerPorts, &env.PeerPorts},
		{env.VarNames.ElectionPorts, &env.ElectionPorts},
	}

	for _, l := range lists {
		value, err := lookupRequired(lookup, l.name)
		if err != nil {
			return nil, err
		}

		*l.value = splitList(value)
	}

	nbInstances := len(env.Instances)

	for _, l := range lists[1:] {
		if n := len(*l.value); n != nbInstances {
			return nil, &ListLengthError{
				Name:     l.name,
				Expected: nbInstances,
				Actual:   n,
			}
		}
	}

	var err error

	env.SnapRetainCount, err = lookupCount(lookup, SnapRetainCountVar)
	if err != nil {
		return nil, err
	}

	env.PurgeInterval, err = lookupCount(lookup, PurgeIntervalVar)
	if err != nil {
		return nil, err
	}

	env.JVMOpts, _ = lookup(JVMOptsVar)

	return &env, nil
}

func lookupRequired(lookup LookupFunc, name string) (string, error) {
	value, found := lookup(name)
	if !found || strings.TrimSpace(value) == "" {
		return "", &MissingVariableError{Name: name}
	}

	return value, nil
}

func lookupCount(lookup LookupFunc, name string) (*int, error) {
	value, found := lookup(name)
	if !found || value == "" {
		return nil, nil
	}

	i, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, &InvalidVariableError{
			Name:   name,
			Value:  value,
			Reason: "not an integer",
		}
	}

	if i < 0 {
		return nil, &InvalidVariableError{
			Name:   name,
			Value:  value,
			Reason: "negative value",
		}
	}

	return &i, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
