package spawner

import "encoding/json"

// BashArgvGenerator shapes argv for the bash executor: the executor is
// itself a small bash wrapper script, not /bin/bash directly, and takes
// long flags instead of the default generator's -c/-e/-s:
// ["--code", code, "--env", serialize(env), "--service", serialize(service)].
// The code travels as its own argv element and is never interpolated
// into a shell string.
type BashArgvGenerator struct{}

// Generate implements ArgvGenerator.
func (BashArgvGenerator) Generate(svc *ServiceDescriptor, env *Env) ([]string, error) {
	envJSON, err := json.Marshal(env)
	if err != nil {
		return nil, NewConfigurationError("failed to serialize env", err)
	}
	svcJSON, err := json.Marshal(resourceFor(svc))
	if err != nil {
		return nil, NewConfigurationError("failed to serialize service", err)
	}
	return []string{"--code", svc.Code, "--env", string(envJSON), "--service", string(svcJSON)}, nil
}
