package domain

// DefaultRooms is the room set loaded when seeding an empty store.
func DefaultRooms() []Room {
	return []Room{
		{Name: "Ruang Rapat Executive", Capacity: 20, Description: "Executive meeting room with 4K projector, interactive whiteboard and premium audio."},
		{Name: "Ruang Rapat Lantai 1", Capacity: 10, Description: "Mid-size room for team meetings, with projector and flip chart."},
		{Name: "Ruang Rapat Kecil A", Capacity: 6, Description: "Small room with round table and LED TV, suited to interviews."},
		{Name: "Ruang Rapat Kecil B", Capacity: 6, Description: "Compact room with whiteboard and video conferencing."},
		{Name: "Aula Serbaguna", Capacity: 50, Description: "Multipurpose hall for seminars and workshops, with stage and sound system."},
		{Name: "Ruang Rapat Lantai 2", Capacity: 15, Description: "Meeting room with outdoor view and standing desks."},
		{Name: "Meeting Room Express", Capacity: 4, Description: "Quick-discussion room near the main entrance."},
		{Name: "Ruang Kreasi & Inovasi", Capacity: 12, Description: "Creative workshop room with whiteboard wall and bean bags."},
		{Name: "Ruang Rapat VIP", Capacity: 8, Description: "Premium room for client and board meetings."},
		{Name: "Ruang Training Center", Capacity: 30, Description: "Classroom-style training room with computers and projector."},
	}
}
