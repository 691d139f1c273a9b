// Package spawner embeds a polyglot microservice runner inside an HTTP
// request pipeline. Given a snippet of source code in any of several
// supported languages and an incoming HTTP request, it launches a
// language-specific executor as a child process, streams the request
// through it, and streams the child's output back to the HTTP
// response — enforcing timeouts, terminating process trees on
// failure, transpiling when required, and preserving the child's
// error stack in the client-visible response.
//
// Construct a Handler once per service and mount it on a router:
//
//	h, err := spawner.New(spawner.ServiceOptions{
//		Code:     `print("hello")`,
//		Language: "python3",
//	}, spawner.Config{BinaryRoot: "/opt/services"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r := chi.NewRouter()
//	spawner.Mount(r, "/run", h, nil)
package spawner
