// Command paramdemo serves a small API whose handlers receive the current
// user through an injected parameter decorator.
package main

import (
	"log"
	"reflect"
	"strings"
	"sync"

	"github.com/enorith/container"
	"github.com/enorith/injectparam"
	"github.com/enorith/injectparam/config"
	"github.com/enorith/injectparam/contracts"
	"github.com/enorith/injectparam/decorator"
	httpErrors "github.com/enorith/injectparam/errors"
	"github.com/enorith/injectparam/params"
	"github.com/enorith/injectparam/pipes"
	"github.com/enorith/injectparam/router"
	"github.com/enorith/injectparam/server"
	"go.uber.org/zap"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" validate:"required"`
	Token string `json:"-"`
}

type NewUser struct {
	Name  string `json:"name" validate:"required"`
	Token string `json:"token" validate:"required,min=8"`
}

type UserService struct {
	mu    sync.RWMutex
	users map[string]*User
}

func (s *UserService) ByToken(token string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[token]
	return u, ok
}

func (s *UserService) Add(n *NewUser) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{ID: int64(len(s.users) + 1), Name: n.Name, Token: n.Token}
	s.users[u.Token] = u
	return u
}

func (s *UserService) List(limit int) []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		if len(list) == limit {
			break
		}
		list = append(list, u)
	}
	return list
}

func (s *UserService) ByID(id int64) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

var CurrentUser = injectparam.CreateWithInjections(
	func(data interface{}, ctx contracts.ExecutionContext, services injectparam.Services, extra injectparam.ExtraGetters) (interface{}, error) {
		req := extra.Req()
		if req == nil {
			return nil, httpErrors.Unauthorized("no request")
		}
		token, err := req.BearerToken()
		if err != nil {
			return nil, httpErrors.Unauthorized(err.Error())
		}
		users, _ := injectparam.Service[*UserService](services, "users")
		u, ok := users.ByToken(string(token))
		if !ok {
			return nil, httpErrors.Unauthorized("unknown token")
		}
		if field, ok := data.(string); ok && strings.EqualFold(field, "name") {
			return u.Name, nil
		}
		return u, nil
	},
	injectparam.Dependencies{injectparam.Dep[*UserService]("users")},
	decorator.Named("currentUser"),
	decorator.WithPipes(pipes.NewValidationPipe()),
)


func routes(users *UserService) server.RouterRegister {
	return func(rw *router.Wrapper, k *server.Kernel) {
		k.Use(server.RequestID)

		rw.Get("/me", decorator.MustBind(func(u *User) *User {
			return u
		}, CurrentUser(nil)))

		rw.Get("/me/name", decorator.MustBind(func(name string) string {
			return "hello " + name
		}, CurrentUser("name")))

		rw.Get("/users/:id", decorator.MustBind(func(id int64, _ *User) (*User, error) {
			u, ok := users.ByID(id)
			if !ok {
				return nil, httpErrors.NotFound("user not found")
			}
			return u, nil
		}, params.Path("id", pipes.ParseIntPipe), CurrentUser(nil)))

		rw.Get("/users", decorator.MustBind(func(limit int) []*User {
			return users.List(limit)
		}, params.Query("limit", pipes.DefaultValuePipe(10))))

		rw.Post("/users", decorator.MustBind(func(n *NewUser) *User {
			return users.Add(n)
		}, params.Body(nil, pipes.NewValidationPipe())))
	}
}

func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("paramdemo: %v", err)
	}
	logger, err := server.NewLogger(cfg)
	if err != nil {
		log.Fatalf("paramdemo: %v", err)
	}
	defer logger.Sync()

	users := &UserService{users: map[string]*User{
		"alice-token": {ID: 1, Name: "alice"},
		"bob-token":   {ID: 2, Name: "bob"},
	}}

	srv := server.NewServer(func(request contracts.RequestContract) container.Interface {
		c := container.New()
		c.BindFunc(reflect.TypeOf(users), func(c container.Interface) (interface{}, error) {
			return users, nil
		}, true)
		return c
	}, cfg, logger)

	if err := srv.Serve(routes(users)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
