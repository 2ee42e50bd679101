package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/terraincognita07/stride/internal/models"
)

const dateLayout = "2006-01-02"

type CardAction string

const (
	CardsOwned    CardAction = "user"
	CardsDiscover CardAction = "discover"
)

type FavoriteAction string

const (
	Favorite   FavoriteAction = "fav"
	Unfavorite FavoriteAction = "unfav"
)

// Message is the envelope of write routes.
type Message struct {
	Status       int                  `json:"status,omitempty"`
	Message      string               `json:"message,omitempty"`
	Achievements []models.Achievement `json:"achievements,omitempty"`
}

// ProfileUpdate is the UPDATE_USER body. Height travels as a number.
type ProfileUpdate struct {
	Nickname          string  `json:"nickname"`
	ProfilePictureURL string  `json:"user_profile_picture_url"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Birthdate         string  `json:"birthdate"`
	Gender            *bool   `json:"gender,omitempty"`
	Height            float64 `json:"height"`
	Weight            float64 `json:"weight,omitempty"`
}

type CardList struct {
	Cards   []models.WorkoutCard `json:"data"`
	Popular []models.WorkoutCard `json:"popular"`
}

type UploadTarget struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

type PushSubscription struct {
	Subscription json.RawMessage `json:"subscription,omitempty"`
	Device       string          `json:"device"`
	Browser      string          `json:"browser"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func (client *Client) FetchUser(ctx context.Context) (models.UserProfile, error) {
	var response envelope[models.UserProfile]
	if err := client.Do(ctx, GetUser, Options{}, &response); err != nil {
		return models.UserProfile{}, err
	}
	return response.Data, nil
}

func (client *Client) SaveUser(ctx context.Context, update ProfileUpdate) (Message, error) {
	var response Message
	err := client.Do(ctx, UpdateUser, Options{Body: update}, &response)
	return response, err
}

func (client *Client) RemoveUser(ctx context.Context) error {
	return client.Do(ctx, DeleteUser, Options{}, nil)
}

// FetchHealthData returns the record for day. A day the backend has no
// record for comes back as an all-zero record.
func (client *Client) FetchHealthData(ctx context.Context, day time.Time) (models.HealthRecord, error) {
	var response envelope[*models.HealthRecord]
	err := client.Do(ctx, GetHealthData, Options{Query: Query{"date": day.Format(dateLayout)}}, &response)
	if IsNotFound(err) {
		return models.EmptyHealthRecord(), nil
	}
	if err != nil {
		return models.HealthRecord{}, err
	}
	if response.Data == nil {
		return models.EmptyHealthRecord(), nil
	}
	record := *response.Data
	if record.Food == nil {
		record.Food = []models.FoodItem{}
	}
	if record.Workouts == nil {
		record.Workouts = []models.DayWorkout{}
	}
	return record, nil
}

// SaveHealthData replaces the record for day. The input type carries no
// derived comparison fields.
func (client *Client) SaveHealthData(ctx context.Context, day time.Time, input models.HealthRecordInput) (Message, error) {
	var response Message
	err := client.Do(ctx, UpdateHealthData, Options{
		Query: Query{"date": day.Format(dateLayout)},
		Body:  input,
	}, &response)
	return response, err
}

func (client *Client) FetchWorkoutCards(ctx context.Context, action CardAction) (CardList, error) {
	var response CardList
	if err := client.Do(ctx, GetWorkoutCard, Options{Query: Query{"action": string(action)}}, &response); err != nil {
		return CardList{}, err
	}
	return response, nil
}

func (client *Client) SaveWorkoutCard(ctx context.Context, card models.WorkoutCard) (models.WorkoutCard, error) {
	var response struct {
		Message
		Data *models.WorkoutCard `json:"data"`
	}
	if err := client.Do(ctx, UpdateWorkoutCard, Options{Body: card}, &response); err != nil {
		return models.WorkoutCard{}, err
	}
	if response.Data == nil {
		return card, nil
	}
	return *response.Data, nil
}

func (client *Client) RemoveWorkoutCard(ctx context.Context, cardID string) error {
	return client.Do(ctx, DeleteWorkoutCard, Options{Body: map[string]string{"id": cardID}}, nil)
}

func (client *Client) ToggleFavorite(ctx context.Context, cardID string, action FavoriteAction) error {
	return client.Do(ctx, FavoriteWorkout, Options{
		Query: Query{"action": string(action)},
		Body:  map[string]string{"id": cardID},
	}, nil)
}

func (client *Client) FetchWeeklyPlan(ctx context.Context) (models.WeeklyPlan, error) {
	var response envelope[models.WeeklyPlan]
	if err := client.Do(ctx, GetWeeklyPlan, Options{}, &response); err != nil {
		return nil, err
	}
	if response.Data == nil {
		return models.WeeklyPlan{}, nil
	}
	return response.Data, nil
}

type weeklyAssignment struct {
	Day    string `json:"day"`
	CardID string `json:"card_id"`
}

func (client *Client) AssignWeeklyPlan(ctx context.Context, day string, cardID string) error {
	return client.Do(ctx, StoreWeeklyPlan, Options{Body: weeklyAssignment{Day: day, CardID: cardID}}, nil)
}

func (client *Client) UnassignWeeklyPlan(ctx context.Context, day string, cardID string) error {
	return client.Do(ctx, DeleteWeeklyPlan, Options{Body: weeklyAssignment{Day: day, CardID: cardID}}, nil)
}

func (client *Client) FetchGoals(ctx context.Context) ([]models.Goal, error) {
	var response envelope[[]models.Goal]
	if err := client.Do(ctx, GetGoals, Options{}, &response); err != nil {
		return nil, err
	}
	if response.Data == nil {
		return []models.Goal{}, nil
	}
	return response.Data, nil
}

// SaveGoals replaces the whole goal list.
func (client *Client) SaveGoals(ctx context.Context, goals []models.Goal) error {
	return client.Do(ctx, UpdateGoals, Options{Body: map[string][]models.Goal{"goals": goals}}, nil)
}

func (client *Client) RequestUploadURL(ctx context.Context, fileType string) (UploadTarget, error) {
	var target UploadTarget
	if err := client.Do(ctx, UploadProfilePicture, Options{Query: Query{"fileType": fileType}}, &target); err != nil {
		return UploadTarget{}, err
	}
	return target, nil
}

func (client *Client) Subscribe(ctx context.Context, subscription PushSubscription) error {
	return client.Do(ctx, SubscribeNotification, Options{Body: subscription}, nil)
}

func (client *Client) Unsubscribe(ctx context.Context, device string, browser string) error {
	return client.Do(ctx, UnsubscribeNotification, Options{Body: PushSubscription{Device: device, Browser: browser}}, nil)
}

func (client *Client) FetchNotifications(ctx context.Context) ([]models.Notification, error) {
	var response envelope[[]models.Notification]
	if err := client.Do(ctx, GetNotifications, Options{}, &response); err != nil {
		return nil, err
	}
	if response.Data == nil {
		return []models.Notification{}, nil
	}
	return response.Data, nil
}

func (client *Client) RemoveNotification(ctx context.Context, notificationID string) error {
	return client.Do(ctx, DeleteNotification, Options{Body: map[string]string{"id": notificationID}}, nil)
}
