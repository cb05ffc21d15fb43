// Package coinssvc has services for interacting with the Coins compile-job
// server backend decoupled from the API that accesses it, grounded on the
// teacher's server/tunas package.
package coinssvc

import (
	"github.com/dekarrin/coins/server/dao"
)

// Service is a service for interacting with and modifying the Coins server
// backend. It performs the actions requested and makes calls to server
// persistence to preserve the backend state.
//
// The zero-value of Service is not ready to be used; assign a valid DAO
// store to DB before attempting to use it.
type Service struct {
	// DB is the persistence store of the service.
	DB dao.Store
}
