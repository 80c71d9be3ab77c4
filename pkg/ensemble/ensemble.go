package ensemble

import (
	"fmt"
	"sort"
	"strconv"
)

type ServerId int64

type Port int

type Instance struct {
	Host         string
	Id           ServerId
	ClientPort   Port
	PeerPort     Port
	ElectionPort Port
}

// PeerAddress returns the value of the server entry of the instance in the
// server properties file.
func (i Instance) PeerAddress() string {
	return fmt.Sprintf("%s:%d:%d", i.Host, i.PeerPort, i.ElectionPort)
}

type Ensemble struct {
	Instances []Instance

	varNames VarNames
}

type Property struct {
	Key   string
	Value string
}

func NewEnsemble(env *Env) (*Ensemble, error) {
	nbInstances := len(env.Instances)
	names := env.VarNames

	e := Ensemble{
		Instances: make([]Instance, nbInstances),
		varNames:  names,
	}

	ids := make(map[ServerId]string, nbInstances)

	for i := 0; i < nbInstances; i++ {
		var instance Instance
		var err error

		instance.Host = env.Instances[i]
		if instance.Host == "" {
			return nil, &InvalidVariableError{
				Name:   names.Instances,
				Value:  instance.Host,
				Reason: "empty hostname",
			}
		}

		instance.Id, err = parseServerId(names.InstanceIds, env.InstanceIds[i])
		if err != nil {
			return nil, err
		}

		if host, found := ids[instance.Id]; found {
			reason := fmt.Sprintf("id already used by instance %q", host)

			return nil, &InvalidVariableError{
				Name:   names.InstanceIds,
				Value:  env.InstanceIds[i],
				Reason: reason,
			}
		}
		ids[instance.Id] = instance.Host

		instance.ClientPort, err = parsePort(names.ClientPorts,
			env.ClientPorts[i])
		if err != nil {
			return nil, err
		}

		instance.PeerPort, err = parsePort(names.PeerPorts, env.PeerPorts[i])
		if err != nil {
			return nil, err
		}

		instance.ElectionPort, err = parsePort(names.ElectionPorts,
			env.ElectionPorts[i])
		if err != nil {
			return nil, err
		}

		e.Instances[i] = instance
	}

	return &e, nil
}

func (e *Ensemble) Size() int {
	return len(e.Instances)
}

func (e *Ensemble) IsCluster() bool {
	return len(e.Instances) > 1
}

func (e *Ensemble) Resolve(containerName string) (Instance, error) {
	var node Instance
	nbMatches := 0

	for _, instance := range e.Instances {
		if instance.Host == containerName {
			node = instance
			nbMatches++
		}
	}

	if nbMatches != 1 {
		return Instance{}, &NodeResolutionError{
			ContainerName: containerName,
			VarName:       e.varNames.Instances,
			NbMatches:     nbMatches,
		}
	}

	return node, nil
}

// PeerList returns one server entry per instance, ordered by id.
func (e *Ensemble) PeerList() []Property {
	instances := make([]Instance, len(e.Instances))
	copy(instances, e.Instances)

	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Id < instances[j].Id
	})

	peers := make([]Property, len(instances))
	for i, instance := range instances {
		peers[i] = Property{
			Key:   fmt.Sprintf("server.%d", instance.Id),
			Value: instance.PeerAddress(),
		}
	}

	return peers
}

func parseServerId(name, s string) (ServerId, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &InvalidVariableError{
			Name:   name,
			Value:  s,
			Reason: "not an integer",
		}
	}

	if i < 1 {
		return 0, &InvalidVariableError{
			Name:   name,
			Value:  s,
			Reason: "server ids must be strictly positive",
		}
	}

	return ServerId(i), nil
}

func parsePort(name, s string) (Port, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InvalidVariableError{
			Name:   name,
			Value:  s,
			Reason: "not an integer",
		}
	}

	if i < 1 || i > 65535 {
		return 0, &InvalidVariableError{
			Name:   name,
			Value:  s,
			Reason: "port out of range",
		}
	}

	return Port(i), nil
}
