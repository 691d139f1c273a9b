package spawner

import "encoding/json"

// LuaArgvGenerator shapes argv for the lua executor. The lua runtime
// has no use for the resource blob, so it always receives the literal
// "{}" regardless of the real descriptor.
type LuaArgvGenerator struct{}

// Generate implements ArgvGenerator.
func (LuaArgvGenerator) Generate(svc *ServiceDescriptor, env *Env) ([]string, error) {
	envJSON, err := json.Marshal(env)
	if err != nil {
		return nil, NewConfigurationError("failed to serialize env", err)
	}
	return []string{"-c", svc.Code, "-e", string(envJSON), "-s", "{}"}, nil
}
