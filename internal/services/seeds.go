package services

import "starlog/internal/models"

// 首次启动时写入的示例数据

const defaultProjectImage = "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?w=800&h=400&fit=crop"

func defaultEssays() []models.Essay {
	return []models.Essay{
		{
			ID: "1", Title: "关于深度学习的思考",
			Content: "最近在学习深度学习的过程中，有一些感悟想记录下来。神经网络就像是我们大脑的一个缩影，每一层都在提取不同层次的特征。\n\n深度学习的魅力在于它的端到端学习能力。",
			Date:    "2026-02-01", Tags: []string{"深度学习", "AI", "思考"}, Likes: 23, Comments: 5, Mood: "🤔",
			CreatedAt: "2026-02-01T00:00:00Z", UpdatedAt: "2026-02-01T00:00:00Z",
		},
		{
			ID: "2", Title: "周末的机器人实验",
			Content: "这个周末花了整整两天时间在实验室调试机器人。通过调整PID参数，机器人的稳定性有了明显提升。\n\n下周计划加入视觉反馈，让机器人能够识别障碍物并自动避让。",
			Date:    "2026-01-25", Tags: []string{"机器人", "实验", "周末"}, Likes: 45, Comments: 12, Mood: "🤖",
			CreatedAt: "2026-01-25T00:00:00Z", UpdatedAt: "2026-01-25T00:00:00Z",
		},
		{
			ID: "3", Title: "新项目的构想",
			Content: "想要做一个结合强化学习和计算机视觉的智能系统，可以自动识别并操作物体。\n\n奖励函数的设计是关键。",
			Date:    "2026-01-18", Tags: []string{"项目", "创意", "RL"}, Likes: 38, Comments: 8, Mood: "💡",
			CreatedAt: "2026-01-18T00:00:00Z", UpdatedAt: "2026-01-18T00:00:00Z",
		},
		{
			ID: "4", Title: "读《机器人学导论》有感",
			Content: "终于读完了这本经典教材。雅可比矩阵描述了关节空间与操作空间之间的映射关系，是机器人控制的核心工具。",
			Date:    "2026-01-10", Tags: []string{"读书", "机器人学", "学习"}, Likes: 52, Comments: 15, Mood: "📚",
			CreatedAt: "2026-01-10T00:00:00Z", UpdatedAt: "2026-01-10T00:00:00Z",
		},
		{
			ID: "5", Title: "生活中的小确幸",
			Content: "今天天气很好，下午在校园里散步，看到樱花开了。在忙碌的学习和研究之余，也要学会享受生活的美好。",
			Date:    "2026-01-05", Tags: []string{"生活", "感悟", "樱花"}, Likes: 67, Comments: 20, Mood: "🌸",
			CreatedAt: "2026-01-05T00:00:00Z", UpdatedAt: "2026-01-05T00:00:00Z",
		},
	}
}

func defaultProjects() []models.Project {
	return []models.Project{
		{
			ID: "1", Title: "个人博客系统",
			Description: "现代化个人博客系统，支持 Markdown 文章、评论系统、管理员后台等功能。",
			Image:       "https://images.unsplash.com/photo-1499750310107-5fef28a66643?w=800&h=400&fit=crop",
			Tags:        []string{"Go", "Gin", "Markdown"},
			GithubURL:   "https://github.com/imanwxx/personal_blog_website",
			Stars:       42, Date: "2026-01-15", Featured: true,
			CreatedAt: "2026-01-15T00:00:00Z", UpdatedAt: "2026-01-15T00:00:00Z",
		},
		{
			ID: "2", Title: "机器人控制系统",
			Description: "使用 ROS2 和 Python 开发的机器人控制系统，支持路径规划、SLAM 建图和自主导航功能。",
			Image:       "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?w=800&h=400&fit=crop",
			Tags:        []string{"ROS2", "Python", "C++", "SLAM"},
			GithubURL:   "https://github.com/imanwxx/robot-control",
			Stars:       28, Date: "2025-11-20",
			CreatedAt: "2025-11-20T00:00:00Z", UpdatedAt: "2025-11-20T00:00:00Z",
		},
		{
			ID: "3", Title: "强化学习仿真环境",
			Description: "基于 Isaac Gym 和 PyTorch 的强化学习训练环境，用于四足机器人的运动控制学习。",
			Image:       "https://images.unsplash.com/photo-1620712943543-bcc4688e7485?w=800&h=400&fit=crop",
			Tags:        []string{"PyTorch", "Isaac Gym", "RL", "MuJoCo"},
			GithubURL:   "https://github.com/imanwxx/rl-sim",
			Stars:       35, Date: "2025-09-10", Featured: true,
			CreatedAt: "2025-09-10T00:00:00Z", UpdatedAt: "2025-09-10T00:00:00Z",
		},
		{
			ID: "4", Title: "3D CAD 设计工具",
			Description: "基于 WebGL 的在线 3D CAD 设计工具，支持基础建模、装配和渲染功能。",
			Image:       "https://images.unsplash.com/photo-1617791160505-6f00504e3519?w=800&h=400&fit=crop",
			Tags:        []string{"Three.js", "WebGL", "TypeScript", "CAD"},
			DemoURL:     "https://cad-demo.example.com",
			Date:        "2025-07-05",
			CreatedAt:   "2025-07-05T00:00:00Z", UpdatedAt: "2025-07-05T00:00:00Z",
		},
	}
}

func defaultCarousel() []models.CarouselItem {
	return []models.CarouselItem{
		{ID: "1", Src: "/images/space.svg", Alt: "太空探索", Title: "探索宇宙的无限可能"},
		{ID: "2", Src: "/images/ai.svg", Alt: "人工智能", Title: "智能时代的未来"},
		{ID: "3", Src: "/images/robot.svg", Alt: "机器人技术", Title: "智能机器人的进化"},
	}
}

func defaultAbout() models.About {
	return models.About{
		"name":      "imanwxx",
		"bio":       "分享生活，机器人，人工智能与智能驾驶技术。",
		"avatarUrl": "",
		"videoUrl":  "",
	}
}
