package repository

import (
	"stakemax/database"
	"stakemax/domain/interfaces"
	"stakemax/infrastructure"
)

// NewTestUnitOfWorkFactory creates a unit of work factory for tests. Events
// are buffered transactionally but flushed into a no-op publisher.
func NewTestUnitOfWorkFactory(db *database.DB) interfaces.UnitOfWorkFactory {
	return NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(infrastructure.NewNoopEventPublisher())
	})
}

// NewTestUnitOfWorkFactoryWithPublisher creates a unit of work factory whose
// units flush into the provided publisher, so tests can observe which events
// survive a commit.
func NewTestUnitOfWorkFactoryWithPublisher(db *database.DB, publisher interfaces.EventPublisher) interfaces.UnitOfWorkFactory {
	return NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(publisher)
	})
}
