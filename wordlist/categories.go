package wordlist

// CompoundCategories holds curated Vietnamese compound words (từ ghép)
// grouped by topic. These are merged with frequency-list words during
// candidate generation; only compounds the frequency table knows survive
// scoring.
var CompoundCategories = map[string][]string{
	"Food & Drink": {
		"thức ăn", "đồ ăn", "cơm chiên", "bánh mì", "nước uống", "đồ uống",
		"bữa sáng", "bữa trưa", "bữa tối", "đồ ngọt", "trái cây", "rau củ",
		"thịt bò", "thịt gà", "thịt lợn", "cá biển", "hải sản", "món ăn",
	},
	"Transport": {
		"xe máy", "xe đạp", "xe hơi", "xe ô tô", "máy bay", "xe buýt",
		"tàu hỏa", "tàu điện", "xe taxi", "xe khách", "phương tiện",
	},
	"Places": {
		"bệnh viện", "trường học", "nhà hàng", "khách sạn", "siêu thị",
		"sân bay", "nhà ga", "bưu điện", "ngân hàng", "công viên",
		"thư viện", "bảo tàng", "nhà thờ", "chùa chiền", "cửa hàng",
		"chợ búa", "quán cà phê", "tiệm thuốc", "phòng khám",
	},
	"People & Occupations": {
		"giáo viên", "học sinh", "sinh viên", "bác sĩ", "công nhân",
		"nhân viên", "kỹ sư", "luật sư", "ca sĩ", "diễn viên",
		"nông dân", "thợ may", "thợ điện", "thợ mộc", "lái xe",
		"bạn bè", "người yêu", "vợ chồng", "con cái", "cha mẹ",
		"ông bà", "anh chị", "em bé", "trẻ em", "người lớn",
	},
	"Work & Life": {
		"công việc", "cuộc sống", "gia đình", "tình yêu", "sức khỏe",
		"tiền bạc", "thời gian", "cuộc đời", "tương lai", "quá khứ",
		"hiện tại", "thành công", "thất bại", "hạnh phúc", "buồn bã",
	},
	"Technology": {
		"điện thoại", "máy tính", "internet", "website", "email",
		"mạng xã hội", "tin nhắn", "video call", "máy ảnh", "tivi",
	},
	"Time Expressions": {
		"hôm nay", "hôm qua", "ngày mai", "tuần này", "năm nay",
		"tháng này", "sáng nay", "tối nay", "đêm qua", "mỗi ngày",
		"hàng tuần", "hàng tháng", "hàng năm", "lâu rồi", "gần đây",
	},
	"Common Expressions": {
		"như vậy", "tuy nhiên", "ngoài ra", "vì vậy", "do đó",
		"mặc dù", "dù sao", "có lẽ", "chắc chắn", "tất nhiên",
		"thực ra", "thật sự", "có thể", "không thể", "cần phải",
	},
	"Nature & Weather": {
		"thời tiết", "mặt trời", "mặt trăng", "bầu trời", "biển cả",
		"núi non", "sông ngòi", "rừng rậm", "đồng bằng", "sa mạc",
	},
	"Body & Health": {
		"cơ thể", "đầu óc", "trái tim", "bàn tay", "bàn chân",
		"mắt mũi", "tai miệng", "bệnh tật", "thuốc men",
	},
	"Education": {
		"bài học", "bài tập", "bài kiểm tra", "kỳ thi", "điểm số",
		"lớp học", "môn học", "sách vở", "giáo dục", "kiến thức",
	},
	"Numbers & Measurements": {
		"số lượng", "kích thước", "trọng lượng", "khoảng cách", "tốc độ",
	},
}

// CuratedCompounds flattens the category table into a deduplicated list.
func CuratedCompounds() []string {
	seen := make(map[string]bool)
	var compounds []string
	for _, words := range CompoundCategories {
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				compounds = append(compounds, w)
			}
		}
	}
	return compounds
}
