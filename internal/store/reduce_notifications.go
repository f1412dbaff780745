package store

import "rowloom/internal/domain"

func reduceNotifications(state domain.NotificationsState, action domain.Action) (domain.NotificationsState, bool) {
	switch a := action.(type) {
	case domain.ShowNotificationAction:
		queue := make([]domain.Notification, len(state.Queue)+1)
		copy(queue, state.Queue)
		queue[len(state.Queue)] = a.Notification
		state.Queue = queue
		return state, true

	case domain.ClearNotificationAction:
		if len(state.Queue) == 0 {
			return state, false
		}
		if a.ID == "" {
			state.Queue = append([]domain.Notification(nil), state.Queue[1:]...)
			return state, true
		}
		for i, n := range state.Queue {
			if n.ID == a.ID {
				queue := make([]domain.Notification, 0, len(state.Queue)-1)
				queue = append(queue, state.Queue[:i]...)
				queue = append(queue, state.Queue[i+1:]...)
				state.Queue = queue
				return state, true
			}
		}
		return state, false
	}
	return state, false
}
