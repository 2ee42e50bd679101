package gateway

import (
	"net/http"
	"sort"
)

// Route is a symbolic name for one backend endpoint.
type Route string

const (
	GetHealthData           Route = "GET_HEALTH_DATA"
	UpdateHealthData        Route = "UPDATE_HEALTH_DATA"
	GetUser                 Route = "GET_USER"
	UpdateUser              Route = "UPDATE_USER"
	DeleteUser              Route = "DELETE_USER"
	DeleteWorkoutCard       Route = "DELETE_WORKOUT_CARD"
	UpdateWorkoutCard       Route = "UPDATE_WORKOUT_CARD"
	GetWorkoutCard          Route = "GET_WORKOUT_CARD"
	GetWeeklyPlan           Route = "GET_WEEKLY_PLAN"
	StoreWeeklyPlan         Route = "STORE_WEEKLY_PLAN"
	DeleteWeeklyPlan        Route = "DELETE_WEEKLY_PLAN"
	ListTable               Route = "LIST_TABLE"
	GetGoals                Route = "GET_GOALS"
	UpdateGoals             Route = "UPDATE_GOALS"
	UploadProfilePicture    Route = "UPLOAD_PFP"
	SubscribeNotification   Route = "SUBSCRIBE_NOTIFICATION"
	UnsubscribeNotification Route = "UNSUBSCRIBE_NOTIFICATION"
	QuickSight              Route = "QUICKSIGHT"
	GetNotifications        Route = "GET_NOTIFICATIONS"
	DeleteNotification      Route = "DELETE_NOTIFICATION"
	FavoriteWorkout         Route = "FAVORITE_WORKOUT"
)

type Endpoint struct {
	Path   string
	Method string
}

var registry = map[Route]Endpoint{
	GetHealthData:           {Path: "/health-data", Method: http.MethodGet},
	UpdateHealthData:        {Path: "/health-data", Method: http.MethodPost},
	GetUser:                 {Path: "/user-profile", Method: http.MethodGet},
	UpdateUser:              {Path: "/user-profile", Method: http.MethodPost},
	DeleteUser:              {Path: "/user-profile", Method: http.MethodDelete},
	DeleteWorkoutCard:       {Path: "/workoutplan-card", Method: http.MethodDelete},
	UpdateWorkoutCard:       {Path: "/workoutplan-card", Method: http.MethodPost},
	GetWorkoutCard:          {Path: "/workoutplan-card", Method: http.MethodGet},
	GetWeeklyPlan:           {Path: "/workoutplan-weekly", Method: http.MethodGet},
	StoreWeeklyPlan:         {Path: "/workoutplan-weekly", Method: http.MethodPost},
	DeleteWeeklyPlan:        {Path: "/workoutplan-weekly", Method: http.MethodDelete},
	ListTable:               {Path: "/health-data/tables", Method: http.MethodGet},
	GetGoals:                {Path: "/goals", Method: http.MethodGet},
	UpdateGoals:             {Path: "/goals", Method: http.MethodPost},
	UploadProfilePicture:    {Path: "/user-profile/upload-url", Method: http.MethodGet},
	SubscribeNotification:   {Path: "/user-profile/subscribe", Method: http.MethodPost},
	UnsubscribeNotification: {Path: "/user-profile/unsubscribe", Method: http.MethodPost},
	QuickSight:              {Path: "/quicksight", Method: http.MethodGet},
	GetNotifications:        {Path: "/user-profile/notifications", Method: http.MethodGet},
	DeleteNotification:      {Path: "/user-profile/notifications", Method: http.MethodDelete},
	FavoriteWorkout:         {Path: "/workoutplan-card-fav", Method: http.MethodPost},
}

func Lookup(route Route) (Endpoint, bool) {
	endpoint, ok := registry[route]
	return endpoint, ok
}

// Routes lists every registered route in name order.
func Routes() []Route {
	routes := make([]Route, 0, len(registry))
	for route := range registry {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i] < routes[j] })
	return routes
}
