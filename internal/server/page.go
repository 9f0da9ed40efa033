package server

// viewerPage is the browser collaborator: it connects to /ws, builds a
// three.js mesh from the broadcast frames, and mirrors camera updates.
const viewerPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>STL Viewer</title>
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: Arial, sans-serif;
            overflow: hidden;
            background: #0f1219;
            color: #ddd;
        }
        #status {
            position: absolute;
            top: 10px;
            left: 10px;
            padding: 6px 10px;
            background: rgba(0, 0, 0, 0.5);
            border-radius: 5px;
            font-size: 13px;
            z-index: 10;
        }
        #status.error { color: #ff7b7b; }
        canvas { display: block; }
    </style>
</head>
<body>
    <div id="status">connecting...</div>
    <script src="https://cdnjs.cloudflare.com/ajax/libs/three.js/r128/three.min.js"></script>
    <script>
        const statusEl = document.getElementById('status');

        const scene = new THREE.Scene();
        const camera = new THREE.PerspectiveCamera(45, window.innerWidth / window.innerHeight, 0.01, 10000);
        const renderer = new THREE.WebGLRenderer({ antialias: true });
        renderer.setSize(window.innerWidth, window.innerHeight);
        document.body.appendChild(renderer.domElement);

        scene.add(new THREE.AmbientLight(0x404050));
        const headlight = new THREE.DirectionalLight(0xffffff, 0.9);
        camera.add(headlight);
        scene.add(camera);

        let mesh = null;

        function setStatus(text, isError) {
            statusEl.textContent = text;
            statusEl.className = isError ? 'error' : '';
        }

        function buildMesh(frame) {
            if (mesh) {
                scene.remove(mesh);
                mesh.geometry.dispose();
            }
            const positions = new Float32Array(frame.triangles.length * 9);
            const normals = new Float32Array(frame.triangles.length * 9);
            frame.triangles.forEach((t, i) => {
                for (let c = 0; c < 3; c++) {
                    positions.set(t.vertices[c], i * 9 + c * 3);
                    normals.set(t.normals[c], i * 9 + c * 3);
                }
            });
            const geo = new THREE.BufferGeometry();
            geo.setAttribute('position', new THREE.BufferAttribute(positions, 3));
            geo.setAttribute('normal', new THREE.BufferAttribute(normals, 3));
            mesh = new THREE.Mesh(geo, new THREE.MeshPhongMaterial({ color: 0x82aaff }));
            scene.add(mesh);
            setStatus(frame.name + ' (' + frame.triangles.length + ' triangles)', false);
        }

        function applyCamera(frame) {
            camera.position.set(frame.position[0], frame.position[1], frame.position[2]);
            camera.lookAt(frame.target[0], frame.target[1], frame.target[2]);
        }

        function connect() {
            const protocol = window.location.protocol === 'https:' ? 'wss:' : 'ws:';
            const ws = new WebSocket(protocol + '//' + window.location.host + '/ws');
            ws.onmessage = (event) => {
                const frame = JSON.parse(event.data);
                if (frame.type === 'mesh') buildMesh(frame);
                else if (frame.type === 'camera') applyCamera(frame);
                else if (frame.type === 'error') setStatus(frame.message, true);
            };
            ws.onopen = () => setStatus('connected, waiting for model...', false);
            ws.onclose = () => {
                setStatus('disconnected, retrying...', true);
                setTimeout(connect, 2000);
            };
        }
        connect();

        camera.position.set(3, 3, 3);
        camera.lookAt(0, 0, 0);

        function animate() {
            requestAnimationFrame(animate);
            renderer.render(scene, camera);
        }
        animate();

        window.addEventListener('resize', () => {
            camera.aspect = window.innerWidth / window.innerHeight;
            camera.updateProjectionMatrix();
            renderer.setSize(window.innerWidth, window.innerHeight);
        });
    </script>
</body>
</html>`
