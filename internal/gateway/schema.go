package gateway

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":      &graphql.Field{Type: graphql.String},
		"email":     &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{Type: graphql.String},
	},
})

var carType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Car",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"model":       &graphql.Field{Type: graphql.String},
		"pricePerDay": &graphql.Field{Type: graphql.Float},
		"createdAt":   &graphql.Field{Type: graphql.String},
	},
})

var reservationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Reservation",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"carId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"createdAt": &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the aggregated read/write schema over the downstream
// services. Query resolvers degrade to empty lists when a service is
// unreachable; the mutation surfaces the rejection reason verbatim.
func NewSchema(client *ServiceClient) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					users, err := client.ListUsers(p.Context)
					if err != nil {
						logResolverError(p, "users", err)
						return []interface{}{}, nil
					}
					return users, nil
				},
			},
			"cars": &graphql.Field{
				Type: graphql.NewList(carType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cars, err := client.ListCars(p.Context)
					if err != nil {
						logResolverError(p, "cars", err)
						return []interface{}{}, nil
					}
					return cars, nil
				},
			},
			"reservations": &graphql.Field{
				Type: graphql.NewList(reservationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					reservations, err := client.ListReservations(p.Context)
					if err != nil {
						logResolverError(p, "reservations", err)
						return []interface{}{}, nil
					}
					return reservations, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createReservation": &graphql.Field{
				Type: reservationType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"carId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, _ := p.Args["userId"].(string)
					carID, _ := p.Args["carId"].(string)

					reservation, err := client.CreateReservation(p.Context, userID, carID)
					if err != nil {
						logResolverError(p, "createReservation", err)
						// Surface only the user-facing message, not the chain
						if appErr, ok := err.(*apperrors.AppError); ok {
							return nil, errors.New(appErr.Message)
						}
						return nil, err
					}
					return reservation, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func logResolverError(p graphql.ResolveParams, field string, err error) {
	logger := observability.LoggerFromContext(p.Context)
	logger.Error().
		Err(err).
		Str("field", field).
		Msg("GraphQL resolver error")
}
