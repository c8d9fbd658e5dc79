package services

import (
	"sort"

	"portfolio/internal/models"
)

// GroupContactsByEmail folds raw submissions into per-sender threads.
//
// Emails are matched exactly as received. Messages inside a thread are ordered by
// CreatedAt ascending, equal timestamps keeping input order. The latest message is the
// earliest-inserted of those sharing the newest timestamp. Threads are ordered by their latest message, newest first;
// ties keep the order in which the sender first appeared.
func GroupContactsByEmail(submissions []models.Contact) []models.ContactThread {
	var order []string
	groups := map[string][]models.Contact{}
	for _, c := range submissions {
		if _, seen := groups[c.Email]; !seen {
			order = append(order, c.Email)
		}
		groups[c.Email] = append(groups[c.Email], c)
	}

	threads := make([]models.ContactThread, 0, len(order))
	for _, email := range order {
		msgs := groups[email]
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		})

		th := models.ContactThread{
			Email:         email,
			Messages:      msgs,
			LatestMessage: latestMessage(msgs),
			TotalMessages: len(msgs),
		}
		th.Name = th.LatestMessage.Name
		for _, m := range msgs {
			if m.Status == models.ContactPending {
				th.HasUnreplied = true
				break
			}
		}
		threads = append(threads, th)
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LatestMessage.CreatedAt.After(threads[j].LatestMessage.CreatedAt)
	})
	return threads
}

// latestMessage expects msgs sorted ascending by CreatedAt with ties in input order.
func latestMessage(msgs []models.Contact) models.Contact {
	i := len(msgs) - 1
	for i > 0 && msgs[i-1].CreatedAt.Equal(msgs[i].CreatedAt) {
		i--
	}
	return msgs[i]
}
