package spawner

import "encoding/json"

// ArgvGenerator produces the argv for an executor given the service
// descriptor and its assembled environment.
type ArgvGenerator interface {
	Generate(svc *ServiceDescriptor, env *Env) ([]string, error)
}

// DefaultArgvGenerator is used by every language without a dedicated
// generator (the node family: javascript, babel, coffee-script; and
// perl, php, python, python3, ruby, scheme, smalltalk, tcl). It shapes
// argv as ["-c", code, "-e", serialize(env), "-s", serialize(service)].
type DefaultArgvGenerator struct{}

// Generate implements ArgvGenerator.
func (DefaultArgvGenerator) Generate(svc *ServiceDescriptor, env *Env) ([]string, error) {
	envJSON, err := json.Marshal(env)
	if err != nil {
		return nil, NewConfigurationError("failed to serialize env", err)
	}
	svcJSON, err := json.Marshal(resourceFor(svc))
	if err != nil {
		return nil, NewConfigurationError("failed to serialize service", err)
	}
	return []string{"-c", svc.Code, "-e", string(envJSON), "-s", string(svcJSON)}, nil
}

// argvSize returns the total byte length an argv slice would occupy,
// used by the spawn controller to reject an oversized argv before ever
// calling exec.Command.
func argvSize(argv []string) int {
	n := 0
	for _, a := range argv {
		n += len(a)
	}
	return n
}
